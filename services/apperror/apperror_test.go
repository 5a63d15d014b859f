package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOfWrapped(t *testing.T) {
	err := fmt.Errorf("%w: service svc-1", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match")
	}
	if got := StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if got := CodeOf(err); got != "NotFound" {
		t.Fatalf("expected NotFound, got %s", got)
	}
}

func TestStatusOfUnknown(t *testing.T) {
	err := errors.New("mongo: connection reset")
	if got := StatusOf(err); got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
	if got := CodeOf(err); got != "Internal" {
		t.Fatalf("expected Internal, got %s", got)
	}
}
