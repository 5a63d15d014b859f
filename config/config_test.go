package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.AppPort != "5000" {
		t.Fatalf("expected port 5000, got %q", cfg.AppPort)
	}
	if cfg.HoldTTL != 15*time.Minute {
		t.Fatalf("expected hold ttl 15m, got %s", cfg.HoldTTL)
	}
	if cfg.PendingTTL != 24*time.Hour {
		t.Fatalf("expected pending ttl 24h, got %s", cfg.PendingTTL)
	}
	if cfg.RedisHoldDB != 1 || cfg.RedisQueueDB != 2 {
		t.Fatalf("unexpected redis dbs: hold=%d queue=%d", cfg.RedisHoldDB, cfg.RedisQueueDB)
	}
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	defer func() { AppConfig = prev }()

	AppConfig.Env = "production"
	if !IsProduction() {
		t.Fatalf("expected production")
	}
	AppConfig.Env = "development"
	if IsProduction() {
		t.Fatalf("expected non-production")
	}
}
