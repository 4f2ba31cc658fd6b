package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "VOUCHER_STORE", "SESSION_TICK_HZ", "MAX_SESSIONS", "GOLF_WINDMILL", "UNLOCK_CODES"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.VoucherStore != "memory" {
		t.Errorf("VoucherStore = %q, want memory", cfg.VoucherStore)
	}
	if cfg.SessionTickHz != 30 {
		t.Errorf("SessionTickHz = %d, want 30", cfg.SessionTickHz)
	}
	if cfg.MaxSessions != 500 {
		t.Errorf("MaxSessions = %d, want 500", cfg.MaxSessions)
	}
	if !cfg.Windmill || !cfg.Props {
		t.Errorf("course features default off: windmill=%v props=%v", cfg.Windmill, cfg.Props)
	}
	if !reflect.DeepEqual(cfg.UnlockCodes, []string{"K+D", "KD"}) {
		t.Errorf("UnlockCodes = %v", cfg.UnlockCodes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TICK_HZ", "60")
	t.Setenv("GOLF_WINDMILL", "false")
	t.Setenv("UNLOCK_CODES", " ab , ,cd ")
	t.Setenv("MIGRATE_ON_START", "true")
	cfg := Load()

	if cfg.SessionTickHz != 60 {
		t.Errorf("SessionTickHz = %d, want 60", cfg.SessionTickHz)
	}
	if cfg.Windmill {
		t.Errorf("GOLF_WINDMILL=false left the windmill on")
	}
	if !cfg.MigrateOnStart {
		t.Errorf("MIGRATE_ON_START=true ignored")
	}
	if !reflect.DeepEqual(cfg.UnlockCodes, []string{"ab", "cd"}) {
		t.Errorf("UnlockCodes = %v, want [ab cd]", cfg.UnlockCodes)
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TIMEOUT_MINUTES", "soon")
	t.Setenv("GOLF_PROPS", "maybe")
	cfg := Load()

	if cfg.SessionTimeoutMin != 30 {
		t.Errorf("SessionTimeoutMin = %d, want default 30", cfg.SessionTimeoutMin)
	}
	if !cfg.Props {
		t.Errorf("malformed GOLF_PROPS did not fall back to true")
	}
}
