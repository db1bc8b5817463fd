package gate

import (
	"testing"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func cfg() tuning.Config {
	return tuning.Default()
}

func readyState() mastery.State {
	return mastery.State{
		SkillID:      "civ-obligations",
		PMastery:     0.90,
		Stability:    1.2,
		AttemptCount: 6,
		CorrectCount: 5,
		Gate:         mastery.GatePracticing,
	}
}

func timedPass(id string, at time.Time, tags ...string) mastery.SkillAttempt {
	return mastery.SkillAttempt{
		AttemptID:  id,
		Mode:       mastery.ModeTimed,
		ScoreNorm:  0.8,
		ErrorTags:  tags,
		OccurredAt: at,
	}
}

func practiceFail(id string, at time.Time, tags ...string) mastery.SkillAttempt {
	return mastery.SkillAttempt{
		AttemptID:  id,
		Mode:       mastery.ModePractice,
		ScoreNorm:  0.3,
		ErrorTags:  tags,
		OccurredAt: at,
	}
}

func hasReason(res Result, r Reason) bool {
	for _, got := range res.Reasons {
		if got == r {
			return true
		}
	}
	return false
}

func TestEvaluate_AllConditionsMet(t *testing.T) {
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(26*time.Hour))
	if !res.Eligible {
		t.Fatalf("expected eligible, got reasons %v", res.Reasons)
	}
	if res.Pair == nil {
		t.Fatal("expected a qualifying pair")
	}
	if res.Pair.FirstAttemptID != "a1" || res.Pair.SecondAttemptID != "a2" {
		t.Errorf("pair = (%s, %s), want (a1, a2)", res.Pair.FirstAttemptID, res.Pair.SecondAttemptID)
	}
	if res.Pair.HoursBetween != 25 {
		t.Errorf("hours between = %f, want 25", res.Pair.HoursBetween)
	}
}

func TestEvaluate_TooSoon(t *testing.T) {
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(20*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(21*time.Hour))
	if res.Eligible {
		t.Fatal("expected blocked")
	}
	if !hasReason(res, ReasonTooSoon) {
		t.Errorf("reasons = %v, want too_soon", res.Reasons)
	}
}

func TestEvaluate_InsufficientPasses(t *testing.T) {
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(time.Hour))
	if res.Eligible {
		t.Fatal("expected blocked")
	}
	if !hasReason(res, ReasonInsufficientPasses) {
		t.Errorf("reasons = %v, want insufficient_passes", res.Reasons)
	}
}

func TestEvaluate_PracticePassesDoNotQualify(t *testing.T) {
	history := []mastery.SkillAttempt{
		{AttemptID: "p1", Mode: mastery.ModePractice, ScoreNorm: 0.95, OccurredAt: t0},
		{AttemptID: "p2", Mode: mastery.ModePractice, ScoreNorm: 0.95, OccurredAt: t0.Add(30 * time.Hour)},
		timedPass("a1", t0.Add(40*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(41*time.Hour))
	if !hasReason(res, ReasonInsufficientPasses) {
		t.Errorf("reasons = %v, want insufficient_passes (practice mode never qualifies)", res.Reasons)
	}
}

func TestEvaluate_FailedTimedAttemptDoesNotQualify(t *testing.T) {
	history := []mastery.SkillAttempt{
		{AttemptID: "f1", Mode: mastery.ModeTimed, ScoreNorm: 0.55, OccurredAt: t0},
		timedPass("a1", t0.Add(30*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(31*time.Hour))
	if !hasReason(res, ReasonInsufficientPasses) {
		t.Errorf("reasons = %v, want insufficient_passes (score below threshold)", res.Reasons)
	}
}

func TestEvaluate_ExamSimQualifies(t *testing.T) {
	history := []mastery.SkillAttempt{
		{AttemptID: "a1", Mode: mastery.ModeExamSim, ScoreNorm: 0.7, OccurredAt: t0},
		{AttemptID: "a2", Mode: mastery.ModeExamSim, ScoreNorm: 0.7, OccurredAt: t0.Add(25 * time.Hour)},
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(26*time.Hour))
	if !res.Eligible {
		t.Errorf("exam_sim passes should qualify, got reasons %v", res.Reasons)
	}
}

func TestEvaluate_InsufficientMastery(t *testing.T) {
	st := readyState()
	st.PMastery = 0.70
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour)),
	}
	res := Evaluate(cfg(), st, history, t0.Add(26*time.Hour))
	if res.Eligible {
		t.Fatal("expected blocked")
	}
	if !hasReason(res, ReasonInsufficientMastery) {
		t.Errorf("reasons = %v, want insufficient_mastery", res.Reasons)
	}
}

func TestEvaluate_LowStability(t *testing.T) {
	st := readyState()
	st.Stability = 0.7
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour)),
	}
	res := Evaluate(cfg(), st, history, t0.Add(26*time.Hour))
	if res.Eligible {
		t.Fatal("expected blocked")
	}
	if !hasReason(res, ReasonLowStability) {
		t.Errorf("reasons = %v, want low_stability", res.Reasons)
	}
}

func TestEvaluate_RecurringErrors(t *testing.T) {
	// issue-spotting dominates the history and still shows up on a
	// qualifying pass: the skill cannot certify yet.
	history := []mastery.SkillAttempt{
		practiceFail("p1", t0.Add(-72*time.Hour), "issue-spotting"),
		practiceFail("p2", t0.Add(-48*time.Hour), "issue-spotting"),
		practiceFail("p3", t0.Add(-24*time.Hour), "issue-spotting", "terminology"),
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour), "issue-spotting"),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(26*time.Hour))
	if res.Eligible {
		t.Fatal("expected blocked")
	}
	if !hasReason(res, ReasonRecurringErrors) {
		t.Errorf("reasons = %v, want recurring_errors", res.Reasons)
	}
}

func TestEvaluate_ClearedErrorsDoNotBlock(t *testing.T) {
	// The signature tags appear only on old practice attempts; the
	// qualifying passes are clean.
	history := []mastery.SkillAttempt{
		practiceFail("p1", t0.Add(-72*time.Hour), "issue-spotting"),
		practiceFail("p2", t0.Add(-48*time.Hour), "issue-spotting"),
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(26*time.Hour))
	if !res.Eligible {
		t.Errorf("expected eligible, got reasons %v", res.Reasons)
	}
}

func TestEvaluate_PairSkipsTooCloseNeighbor(t *testing.T) {
	// Latest pass is 2h after the middle one but 30h after the first:
	// the (first, latest) pair still qualifies.
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(28*time.Hour)),
		timedPass("a3", t0.Add(30*time.Hour)),
	}
	res := Evaluate(cfg(), readyState(), history, t0.Add(31*time.Hour))
	if !res.Eligible {
		t.Fatalf("expected eligible, got reasons %v", res.Reasons)
	}
	if res.Pair.FirstAttemptID != "a1" || res.Pair.SecondAttemptID != "a3" {
		t.Errorf("pair = (%s, %s), want (a1, a3)", res.Pair.FirstAttemptID, res.Pair.SecondAttemptID)
	}
}

func TestEvaluate_ReportsAllUnmetConditions(t *testing.T) {
	st := readyState()
	st.PMastery = 0.5
	st.Stability = 0.5
	res := Evaluate(cfg(), st, nil, t0)
	for _, want := range []Reason{ReasonInsufficientMastery, ReasonLowStability, ReasonInsufficientPasses} {
		if !hasReason(res, want) {
			t.Errorf("reasons = %v, missing %v", res.Reasons, want)
		}
	}
}

func TestAdvance_FirstAttemptStartsPracticing(t *testing.T) {
	st := mastery.State{SkillID: "crim-general", Gate: mastery.GateStudying, AttemptCount: 1}
	next, v := Advance(cfg(), st, nil, t0)
	if next.Gate != mastery.GatePracticing {
		t.Errorf("gate = %q, want PRACTICING", next.Gate)
	}
	if v != nil {
		t.Error("no verification expected on first attempt")
	}
}

func TestAdvance_NoAttemptsStaysStudying(t *testing.T) {
	st := mastery.State{SkillID: "crim-general", Gate: mastery.GateStudying}
	next, _ := Advance(cfg(), st, nil, t0)
	if next.Gate != mastery.GateStudying {
		t.Errorf("gate = %q, want STUDYING", next.Gate)
	}
}

func TestAdvance_BecomesExamReady(t *testing.T) {
	history := []mastery.SkillAttempt{
		timedPass("a1", t0),
		timedPass("a2", t0.Add(25*time.Hour)),
	}
	now := t0.Add(26 * time.Hour)
	next, v := Advance(cfg(), readyState(), history, now)

	if next.Gate != mastery.GateExamReady {
		t.Fatalf("gate = %q, want EXAM_READY", next.Gate)
	}
	if next.GatePassedAt == nil || !next.GatePassedAt.Equal(now) {
		t.Errorf("gatePassedAt = %v, want %v", next.GatePassedAt, now)
	}
	if v == nil {
		t.Fatal("expected a verification record")
	}
	if v.SkillID != "civ-obligations" || v.PMastery != 0.90 {
		t.Errorf("verification = %+v", v)
	}
	if v.FirstAttemptID != "a1" || v.SecondAttemptID != "a2" || v.HoursBetween != 25 {
		t.Errorf("verification pair = (%s, %s, %f)", v.FirstAttemptID, v.SecondAttemptID, v.HoursBetween)
	}
}

func TestAdvance_FailureChangesNothing(t *testing.T) {
	st := readyState()
	st.PMastery = 0.6
	history := []mastery.SkillAttempt{timedPass("a1", t0)}

	next, v := Advance(cfg(), st, history, t0.Add(time.Hour))
	if next.Gate != mastery.GatePracticing {
		t.Errorf("gate = %q, want PRACTICING unchanged", next.Gate)
	}
	if next.GatePassedAt != nil {
		t.Error("gatePassedAt must stay unset on failure")
	}
	if v != nil {
		t.Error("no verification expected on failure")
	}
}

func TestAdvance_NeverRevertsExamReady(t *testing.T) {
	passed := t0.Add(-time.Hour)
	st := mastery.State{
		SkillID:      "civ-obligations",
		PMastery:     0.2, // collapsed since verification
		Stability:    0.3,
		AttemptCount: 20,
		Gate:         mastery.GateExamReady,
		GatePassedAt: &passed,
	}
	next, v := Advance(cfg(), st, nil, t0)
	if next.Gate != mastery.GateExamReady {
		t.Errorf("gate = %q, EXAM_READY must never revert", next.Gate)
	}
	if v != nil {
		t.Error("re-advancing an exam-ready skill must not mint a new verification")
	}
	if next.GatePassedAt == nil || !next.GatePassedAt.Equal(passed) {
		t.Error("original gatePassedAt must be preserved")
	}
}
