package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaskStability != 0.70 {
		t.Errorf("MaskStability = %v, want 0.70", cfg.MaskStability)
	}
	if cfg.MinStability != 0.30 {
		t.Errorf("MinStability = %v, want 0.30", cfg.MinStability)
	}
	if cfg.ChatBuffer != 50 {
		t.Errorf("ChatBuffer = %v, want 50", cfg.ChatBuffer)
	}
	if len(cfg.PhaseThresholds) != 4 {
		t.Fatalf("PhaseThresholds len = %d, want 4", len(cfg.PhaseThresholds))
	}
	want := []float64{50, 80, 120, 150}
	for i, v := range want {
		if cfg.PhaseThresholds[i] != v {
			t.Errorf("PhaseThresholds[%d] = %v, want %v", i, cfg.PhaseThresholds[i], v)
		}
	}
	if cfg.MobKillPriority != "LOW" {
		t.Errorf("MobKillPriority = %v, want LOW", cfg.MobKillPriority)
	}
}

func TestValidateRejectsInvertedStability(t *testing.T) {
	cfg := Config{
		MaskStability:   0.5,
		MinStability:    0.9,
		PhaseThresholds: []float64{50, 80, 120, 150},
		ChatBuffer:      50,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_stability > mask_stability")
	}
}

func TestValidateRejectsBadPhaseThresholds(t *testing.T) {
	cfg := Config{
		MaskStability:   0.7,
		MinStability:    0.3,
		PhaseThresholds: []float64{50, 80, 70, 150},
		ChatBuffer:      50,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-increasing phase thresholds")
	}
}

func TestValidateRejectsWrongThresholdCount(t *testing.T) {
	cfg := Config{
		MaskStability:   0.7,
		MinStability:    0.3,
		PhaseThresholds: []float64{50, 80, 120},
		ChatBuffer:      50,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for wrong threshold count")
	}
}

func TestValidateRejectsZeroChatBuffer(t *testing.T) {
	cfg := Config{
		MaskStability:   0.7,
		MinStability:    0.3,
		PhaseThresholds: []float64{50, 80, 120, 150},
		ChatBuffer:      0,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero chat_buffer")
	}
}
