package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefault_CanonicalWeights(t *testing.T) {
	cfg := Default()

	if got := cfg.Mastery.FormatWeights["oral"]; got != 1.35 {
		t.Errorf("oral format weight = %v, want 1.35", got)
	}
	if got := cfg.Mastery.ModeWeights["timed"]; got != 1.25 {
		t.Errorf("timed mode weight = %v, want 1.25", got)
	}
	if got := cfg.Mastery.LearningRate; got != 0.15 {
		t.Errorf("learning rate = %v, want 0.15", got)
	}
	if cfg.Mastery.DeltaFloor != -0.12 || cfg.Mastery.DeltaCeil != 0.10 {
		t.Errorf("delta clamp = [%v, %v], want [-0.12, 0.10]", cfg.Mastery.DeltaFloor, cfg.Mastery.DeltaCeil)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero learning rate", func(c *Config) { c.Mastery.LearningRate = 0 }},
		{"positive delta floor", func(c *Config) { c.Mastery.DeltaFloor = 0.05 }},
		{"pass threshold above one", func(c *Config) { c.Mastery.PassThreshold = 1.5 }},
		{"inverted stability range", func(c *Config) { c.Mastery.StabilityCeil = 0.1 }},
		{"zero timed passes", func(c *Config) { c.Gate.RequiredTimedPasses = 0 }},
		{"zero planner weights", func(c *Config) {
			c.Planner.LearningGainWeight = 0
			c.Planner.RetentionGainWeight = 0
			c.Planner.ExamROIWeight = 0
			c.Planner.ErrorClosureWeight = 0
		}},
		{"initial ease below floor", func(c *Config) { c.SRS.InitialEase = 1.0 }},
		{"phase boundaries crossed", func(c *Config) { c.Phase.DistantMinDays = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Gate.MasteryThreshold != 0.85 {
		t.Errorf("gate mastery threshold = %v, want 0.85", cfg.Gate.MasteryThreshold)
	}
}

func TestLoad_OverrideFile(t *testing.T) {
	path := writeTuningFile(t, `{"gate": {"mastery_threshold": 0.9}, "planner": {"max_tasks_per_skill": 3}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gate.MasteryThreshold != 0.9 {
		t.Errorf("overridden gate threshold = %v, want 0.9", cfg.Gate.MasteryThreshold)
	}
	if cfg.Planner.MaxTasksPerSkill != 3 {
		t.Errorf("overridden max tasks per skill = %d, want 3", cfg.Planner.MaxTasksPerSkill)
	}
	// Untouched sections keep their defaults.
	if cfg.SRS.InitialEase != 2.5 {
		t.Errorf("initial ease = %v, want default 2.5", cfg.SRS.InitialEase)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeTuningFile(t, `{"gaet": {"mastery_threshold": 0.9}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with misspelled section = nil error, want schema rejection")
	}
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	path := writeTuningFile(t, `{"mastery": {"learning_rate": 7}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with out-of-range value = nil error, want schema rejection")
	}
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	path := writeTuningFile(t, `{"mastery": `)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with malformed JSON = nil error, want error")
	}
}

func writeTuningFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
