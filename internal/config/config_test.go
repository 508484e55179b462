package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.VerifyToken != "voiceflow123" {
		t.Errorf("VerifyToken = %s, want voiceflow123", cfg.VerifyToken)
	}
	if cfg.VoiceflowBaseURL != DefaultVoiceflowBase {
		t.Errorf("VoiceflowBaseURL = %s", cfg.VoiceflowBaseURL)
	}
	if cfg.GraphAPIBaseURL != DefaultGraphAPIBase {
		t.Errorf("GraphAPIBaseURL = %s", cfg.GraphAPIBaseURL)
	}
	if cfg.VoiceflowTimeout != 15*time.Second {
		t.Errorf("VoiceflowTimeout = %s, want 15s", cfg.VoiceflowTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("VERIFY_TOKEN", "custom-token")
	t.Setenv("VOICEFLOW_TIMEOUT", "3s")
	t.Setenv("VOICEFLOW_VERSION_ID", "v-123")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.VerifyToken != "custom-token" {
		t.Errorf("VerifyToken = %s", cfg.VerifyToken)
	}
	if cfg.VoiceflowTimeout != 3*time.Second {
		t.Errorf("VoiceflowTimeout = %s, want 3s", cfg.VoiceflowTimeout)
	}
	if cfg.VoiceflowVersionID != "v-123" {
		t.Errorf("VoiceflowVersionID = %s", cfg.VoiceflowVersionID)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("VOICEFLOW_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.VoiceflowTimeout != 15*time.Second {
		t.Errorf("VoiceflowTimeout = %s, want default 15s", cfg.VoiceflowTimeout)
	}
}
