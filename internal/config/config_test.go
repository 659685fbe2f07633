// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"sync"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.URL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.URL = %q, want default", cfg.Backend.URL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
	if cfg.HealthInterval() != 30*time.Second {
		t.Errorf("HealthInterval() = %v, want 30s", cfg.HealthInterval())
	}
	if !cfg.UI.Markdown {
		t.Error("UI.Markdown should default to true")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CANDLECHAT_BACKEND_URL", "http://example.com:9000/")
	t.Setenv("CANDLECHAT_TIMEOUT_SECONDS", "5")
	t.Setenv("CANDLECHAT_NO_MARKDOWN", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://example.com:9000" {
		t.Errorf("Backend.URL = %q, want env value with trailing slash trimmed", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.Backend.TimeoutSeconds)
	}
	if cfg.UI.Markdown {
		t.Error("UI.Markdown should be disabled by CANDLECHAT_NO_MARKDOWN")
	}
}

func TestApplyEnvOverrides_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("CANDLECHAT_TIMEOUT_SECONDS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30 for invalid env value", cfg.Backend.TimeoutSeconds)
	}
}

func TestFillDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.fillDefaults()

	if cfg.Backend.URL == "" {
		t.Error("fillDefaults should backfill empty URL")
	}
	if cfg.Backend.TimeoutSeconds <= 0 {
		t.Error("fillDefaults should backfill zero timeout")
	}
	if cfg.UI.WrapWidth <= 0 {
		t.Error("fillDefaults should backfill zero wrap width")
	}
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Backend.URL = "http://127.0.0.1:9010"
	cfg.Backend.TimeoutSeconds = 45
	cfg.UI.Markdown = false

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend.URL != "http://127.0.0.1:9010" {
		t.Errorf("Backend.URL = %q, want saved value", loaded.Backend.URL)
	}
	if loaded.Backend.TimeoutSeconds != 45 {
		t.Errorf("Backend.TimeoutSeconds = %d, want 45", loaded.Backend.TimeoutSeconds)
	}
	if loaded.UI.Markdown {
		t.Error("UI.Markdown = true, want saved false")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			_ = Global()
		}()
	}

	wg.Wait()

	if Global() == nil {
		t.Error("Global() returned nil after concurrent access")
	}
}
