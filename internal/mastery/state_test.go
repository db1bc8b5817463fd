package mastery

import "testing"

func TestNewState(t *testing.T) {
	p := params()
	s := NewState(p, "civ-obligations")
	if s.SkillID != "civ-obligations" {
		t.Errorf("SkillID = %q", s.SkillID)
	}
	if s.PMastery != 0 {
		t.Errorf("PMastery = %f, want 0", s.PMastery)
	}
	if !almostEqual(s.Stability, 1.0) {
		t.Errorf("Stability = %f, want 1.0", s.Stability)
	}
	if s.Gate != GateStudying {
		t.Errorf("Gate = %q, want %q", s.Gate, GateStudying)
	}
	if s.LastPracticedAt != nil || s.NextReviewDate != nil || s.GatePassedAt != nil {
		t.Error("fresh state should carry no timestamps")
	}
}

func TestNewStateWithPrior(t *testing.T) {
	p := params()
	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.10},
		{3, 0.30},
		{5, 0.50},
		{0, 0},
		{6, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		s := NewStateWithPrior(p, "crim-general", tt.level)
		if !almostEqual(s.PMastery, tt.want) {
			t.Errorf("level %d: PMastery = %f, want %f", tt.level, s.PMastery, tt.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	s := State{AttemptCount: 0, CorrectCount: 0}
	if s.Accuracy() != 0 {
		t.Errorf("accuracy with no attempts = %f, want 0", s.Accuracy())
	}
	s = State{AttemptCount: 4, CorrectCount: 3}
	if !almostEqual(s.Accuracy(), 0.75) {
		t.Errorf("accuracy = %f, want 0.75", s.Accuracy())
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range AllModes() {
		if !ValidMode(m) {
			t.Errorf("ValidMode(%q) = false", m)
		}
	}
	if ValidMode(Mode("cram")) {
		t.Error("ValidMode(cram) = true")
	}
}

func TestExamConditions(t *testing.T) {
	if ExamConditions(ModePractice) {
		t.Error("practice should not count as exam conditions")
	}
	if !ExamConditions(ModeTimed) || !ExamConditions(ModeExamSim) {
		t.Error("timed and exam_sim should count as exam conditions")
	}
}
