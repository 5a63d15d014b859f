// Package availability implements the per-date open-slot sets held on both
// services and providers. All functions return fresh slices and never
// mutate their inputs, so stores read from Mongo can be reused by callers.
package availability

import (
	"fmt"
	"strings"

	"servicefinder/models"
	"servicefinder/services/apperror"
)

// IsOpen reports whether slot is open on date.
func IsOpen(entries []models.AvailabilityEntry, date, slot string) bool {
	for _, e := range entries {
		if e.Date != date {
			continue
		}
		for _, s := range e.Slots {
			if s == slot {
				return true
			}
		}
		return false
	}
	return false
}

// Merge unions slots into the entry for date, appending a new entry when the
// date is absent. Slots keep first-seen order and never repeat.
func Merge(entries []models.AvailabilityEntry, date string, slots []string) []models.AvailabilityEntry {
	out := clone(entries)
	for i := range out {
		if out[i].Date == date {
			out[i].Slots = union(out[i].Slots, slots)
			return out
		}
	}
	fresh := union(nil, slots)
	if len(fresh) == 0 {
		return out
	}
	return append(out, models.AvailabilityEntry{Date: date, Slots: fresh})
}

// Remove takes slot out of the entry for date and drops the entry once it is
// empty. The bool reports whether anything was removed.
func Remove(entries []models.AvailabilityEntry, date, slot string) ([]models.AvailabilityEntry, bool) {
	out := make([]models.AvailabilityEntry, 0, len(entries))
	removed := false
	for _, e := range entries {
		if e.Date != date {
			out = append(out, cloneEntry(e))
			continue
		}
		kept := make([]string, 0, len(e.Slots))
		for _, s := range e.Slots {
			if s == slot {
				removed = true
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) > 0 {
			out = append(out, models.AvailabilityEntry{Date: e.Date, Slots: kept})
		}
	}
	return out, removed
}

// Rebuild recomputes an aggregate from scratch by folding Merge over every
// list in order, entry order within each list preserved.
func Rebuild(lists ...[]models.AvailabilityEntry) []models.AvailabilityEntry {
	out := []models.AvailabilityEntry{}
	for _, entries := range lists {
		for _, e := range entries {
			out = Merge(out, e.Date, e.Slots)
		}
	}
	return out
}

// Normalize collapses repeated dates and slots in caller-supplied input.
func Normalize(entries []models.AvailabilityEntry) []models.AvailabilityEntry {
	return Rebuild(entries)
}

// Validate checks caller-supplied availability: at least one entry, and every
// entry has a date and at least one non-blank slot.
func Validate(entries []models.AvailabilityEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one availability entry is required", apperror.ErrValidation)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Date) == "" {
			return fmt.Errorf("%w: availability entry %d has no date", apperror.ErrValidation, i+1)
		}
		if len(e.Slots) == 0 {
			return fmt.Errorf("%w: availability entry for %s has no slots", apperror.ErrValidation, e.Date)
		}
		for _, s := range e.Slots {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%w: availability entry for %s has a blank slot", apperror.ErrValidation, e.Date)
			}
		}
	}
	return nil
}

// SlotCount returns the number of open (date, slot) pairs.
func SlotCount(entries []models.AvailabilityEntry) int {
	n := 0
	for _, e := range entries {
		n += len(e.Slots)
	}
	return n
}

func union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func clone(entries []models.AvailabilityEntry) []models.AvailabilityEntry {
	out := make([]models.AvailabilityEntry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}

func cloneEntry(e models.AvailabilityEntry) models.AvailabilityEntry {
	return models.AvailabilityEntry{Date: e.Date, Slots: append([]string(nil), e.Slots...)}
}
