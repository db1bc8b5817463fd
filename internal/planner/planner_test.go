package planner

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

var planNow = time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)

func params() tuning.PlannerParams {
	return tuning.Default().Planner
}

// planGraph builds a small fixture graph: two roots and one skill locked
// behind a prerequisite.
func planGraph(t *testing.T) *skillgraph.Graph {
	t.Helper()
	g, err := skillgraph.NewGraph([]skillgraph.Skill{
		{
			ID:             "s-found",
			Name:           "Foundations",
			Unit:           skillgraph.UnitCivilLaw,
			ExamWeight:     0.9,
			DifficultyTier: 1,
			Formats:        []skillgraph.Format{skillgraph.FormatWritten, skillgraph.FormatMCQ},
		},
		{
			ID:             "s-other",
			Name:           "Other Ground",
			Unit:           skillgraph.UnitPublicLaw,
			ExamWeight:     0.5,
			DifficultyTier: 2,
			Formats:        []skillgraph.Format{skillgraph.FormatMCQ, skillgraph.FormatOral},
		},
		{
			ID:             "s-adv",
			Name:           "Advanced Topic",
			Unit:           skillgraph.UnitCivilLaw,
			ExamWeight:     0.7,
			DifficultyTier: 4,
			Formats:        []skillgraph.Format{skillgraph.FormatWritten},
			Prerequisites:  []string{"s-found"},
		},
	})
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}

func item(id, skillID string, format skillgraph.Format, difficulty, minutes int) Item {
	return Item{
		ID:               id,
		SkillWeights:     map[string]float64{skillID: 1.0},
		Format:           format,
		Difficulty:       difficulty,
		EstimatedMinutes: minutes,
		Active:           true,
	}
}

func stateWith(skillID string, pMastery float64, attempts int) mastery.State {
	st := mastery.NewState(tuning.Default().Mastery, skillID)
	st.PMastery = pMastery
	st.AttemptCount = attempts
	return st
}

func baseInput(t *testing.T) Input {
	return Input{
		BudgetMinutes: 60,
		Phase:         examphase.PhaseApproaching,
		Graph:         planGraph(t),
		States:        map[string]mastery.State{},
		Debts:         map[string]float64{},
		Now:           planNow,
	}
}

func totalMinutes(p Plan) int {
	sum := 0
	for _, task := range p.Tasks {
		sum += task.EstimatedMinutes
	}
	return sum
}

func taskItemIDs(p Plan) []string {
	ids := make([]string, len(p.Tasks))
	for i, task := range p.Tasks {
		ids[i] = task.ItemID
	}
	return ids
}

func TestBuild_NeverExceedsBudget(t *testing.T) {
	in := baseInput(t)
	in.Items = []Item{
		item("it-1", "s-found", skillgraph.FormatWritten, 2, 20),
		item("it-2", "s-found", skillgraph.FormatMCQ, 1, 15),
		item("it-3", "s-other", skillgraph.FormatMCQ, 1, 25),
		item("it-4", "s-other", skillgraph.FormatOral, 3, 40),
	}

	for budget := 0; budget <= 90; budget += 5 {
		in.BudgetMinutes = budget
		plan := Build(params(), in)
		if got := totalMinutes(plan); got > budget {
			t.Errorf("budget %d: planned %d minutes", budget, got)
		}
		if plan.PlannedMinutes != totalMinutes(plan) {
			t.Errorf("budget %d: PlannedMinutes %d, tasks sum %d", budget, plan.PlannedMinutes, totalMinutes(plan))
		}
	}
}

func TestBuild_FiltersSkillsWithUnmetPrerequisites(t *testing.T) {
	in := baseInput(t)
	in.Items = []Item{
		item("it-adv", "s-adv", skillgraph.FormatWritten, 4, 20),
		item("it-root", "s-found", skillgraph.FormatWritten, 2, 20),
	}

	plan := Build(params(), in)
	for _, task := range plan.Tasks {
		if task.SkillID == "s-adv" {
			t.Fatal("s-adv scheduled with zero attempts on its prerequisite")
		}
	}

	// One attempt on the prerequisite unlocks it.
	in.States["s-found"] = stateWith("s-found", 0.3, 1)
	plan = Build(params(), in)
	found := false
	for _, task := range plan.Tasks {
		if task.SkillID == "s-adv" {
			found = true
		}
	}
	if !found {
		t.Error("s-adv not scheduled after its prerequisite was attempted")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	in := baseInput(t)
	in.Phase = examphase.PhaseCritical
	in.States["s-found"] = stateWith("s-found", 0.4, 3)
	in.Debts = map[string]float64{"s-found": 1.2, "s-other": 0.8}
	in.RecentErrorTags = []string{"issue-spotting", "rule-statement"}
	in.Items = []Item{
		item("it-1", "s-found", skillgraph.FormatWritten, 2, 20),
		item("it-2", "s-found", skillgraph.FormatMCQ, 1, 15),
		item("it-3", "s-other", skillgraph.FormatMCQ, 1, 25),
	}

	first := Build(params(), in)
	second := Build(params(), in)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different plans")
	}
	if len(first.Tasks) == 0 {
		t.Fatal("expected a non-empty plan")
	}
}

func TestBuild_SkipsOversizedCandidateAndKeepsPacking(t *testing.T) {
	in := baseInput(t)
	in.BudgetMinutes = 40
	// Scores rank a > b > c via mastery headroom.
	in.States["s-found"] = stateWith("s-found", 0.1, 1)
	in.States["s-other"] = stateWith("s-other", 0.3, 1)
	in.Items = []Item{
		item("it-a", "s-found", skillgraph.FormatWritten, 2, 25),
		item("it-b", "s-found", skillgraph.FormatMCQ, 2, 30),
		item("it-c", "s-other", skillgraph.FormatMCQ, 1, 15),
	}

	plan := Build(params(), in)
	want := []string{"it-a", "it-c"}
	if got := taskItemIDs(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("packed items = %v, want %v", got, want)
	}
	if plan.PlannedMinutes != 40 {
		t.Errorf("planned minutes = %d, want 40", plan.PlannedMinutes)
	}
}

func TestBuild_EmptyPlanWhenNothingFits(t *testing.T) {
	in := baseInput(t)
	in.BudgetMinutes = 10
	in.Items = []Item{
		item("it-1", "s-found", skillgraph.FormatWritten, 2, 20),
		item("it-2", "s-other", skillgraph.FormatMCQ, 1, 15),
	}

	plan := Build(params(), in)
	if len(plan.Tasks) != 0 {
		t.Errorf("tasks = %v, want none", taskItemIDs(plan))
	}
	if plan.PlannedMinutes != 0 {
		t.Errorf("planned minutes = %d, want 0", plan.PlannedMinutes)
	}

	in.BudgetMinutes = 0
	if plan := Build(params(), in); len(plan.Tasks) != 0 {
		t.Error("zero budget should yield an empty plan")
	}
}

func TestBuild_CapsTasksPerSkill(t *testing.T) {
	in := baseInput(t)
	in.BudgetMinutes = 120
	in.Items = []Item{
		item("it-1", "s-found", skillgraph.FormatWritten, 2, 20),
		item("it-2", "s-found", skillgraph.FormatWritten, 3, 20),
		item("it-3", "s-found", skillgraph.FormatMCQ, 1, 20),
	}

	plan := Build(params(), in)
	count := 0
	for _, task := range plan.Tasks {
		if task.SkillID == "s-found" {
			count++
		}
	}
	if count != params().MaxTasksPerSkill {
		t.Errorf("s-found tasks = %d, want %d", count, params().MaxTasksPerSkill)
	}
}

func TestBuild_ItemAssignedAtMostOnce(t *testing.T) {
	in := baseInput(t)
	shared := Item{
		ID:               "it-shared",
		SkillWeights:     map[string]float64{"s-found": 0.6, "s-other": 0.4},
		Format:           skillgraph.FormatMCQ,
		Difficulty:       2,
		EstimatedMinutes: 20,
		Active:           true,
	}
	in.Items = []Item{shared}

	plan := Build(params(), in)
	if len(plan.Tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(plan.Tasks))
	}
	if plan.Tasks[0].ItemID != "it-shared" {
		t.Errorf("item = %s, want it-shared", plan.Tasks[0].ItemID)
	}
}

func TestBuild_SkipsInactiveAndUnsupportedFormats(t *testing.T) {
	in := baseInput(t)
	retired := item("it-retired", "s-found", skillgraph.FormatWritten, 2, 20)
	retired.Active = false
	in.Items = []Item{
		retired,
		// s-found is not assessed orally.
		item("it-oral", "s-found", skillgraph.FormatOral, 2, 20),
		item("it-ok", "s-found", skillgraph.FormatWritten, 2, 20),
	}

	plan := Build(params(), in)
	want := []string{"it-ok"}
	if got := taskItemIDs(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("packed items = %v, want %v", got, want)
	}
}

func TestBuild_ModeFollowsPhase(t *testing.T) {
	in := baseInput(t)
	in.Items = []Item{item("it-1", "s-found", skillgraph.FormatWritten, 2, 20)}

	plan := Build(params(), in)
	if plan.Tasks[0].Mode != mastery.ModePractice {
		t.Errorf("approaching phase mode = %s, want practice", plan.Tasks[0].Mode)
	}

	in.Phase = examphase.PhaseCritical
	plan = Build(params(), in)
	if plan.Tasks[0].Mode != mastery.ModeTimed {
		t.Errorf("critical phase mode = %s, want timed", plan.Tasks[0].Mode)
	}
	if plan.Tasks[0].Factors.PhaseAdjust <= 0 {
		t.Error("critical phase should record a positive phase adjustment")
	}
}

func TestBuild_DistantPhaseFavorsFoundationalItems(t *testing.T) {
	in := baseInput(t)
	in.States["s-found"] = stateWith("s-found", 0.5, 1)
	in.States["s-other"] = stateWith("s-other", 0.5, 1)
	easy := item("it-easy", "s-other", skillgraph.FormatMCQ, 1, 20)
	hard := item("it-hard", "s-found", skillgraph.FormatWritten, 5, 20)
	in.Items = []Item{easy, hard}

	// Equal base scores: the heavier skill wins the tie.
	plan := Build(params(), in)
	if got := taskItemIDs(plan); got[0] != "it-hard" {
		t.Errorf("approaching order = %v, want it-hard first", got)
	}

	// Distant phase boosts the low-difficulty item past it.
	in.Phase = examphase.PhaseDistant
	plan = Build(params(), in)
	if got := taskItemIDs(plan); got[0] != "it-easy" {
		t.Errorf("distant order = %v, want it-easy first", got)
	}
}

func TestBuild_ErrorClosureRanksTargetedItems(t *testing.T) {
	in := baseInput(t)
	in.RecentErrorTags = []string{"issue-spotting", "rule-statement"}
	// High mastery keeps learning gain small so error closure dominates.
	in.States["s-found"] = stateWith("s-found", 0.8, 4)
	targeted := item("it-targeted", "s-found", skillgraph.FormatWritten, 3, 20)
	targeted.ErrorTags = []string{"issue-spotting", "rule-statement"}
	plain := item("it-plain", "s-found", skillgraph.FormatWritten, 3, 20)
	in.Items = []Item{plain, targeted}

	plan := Build(params(), in)
	if got := taskItemIDs(plan); got[0] != "it-targeted" {
		t.Errorf("order = %v, want it-targeted first", got)
	}
	if f := plan.Tasks[0].Factors.ErrorClosure; f != 1.0 {
		t.Errorf("error closure = %f, want 1.0", f)
	}
	if f := plan.Tasks[1].Factors.ErrorClosure; f != 0 {
		t.Errorf("untargeted error closure = %f, want 0", f)
	}
	if !strings.Contains(plan.Tasks[0].Rationale, "missed issue") {
		t.Errorf("rationale = %q, want it to name the targeted errors", plan.Tasks[0].Rationale)
	}
}

func TestBuild_RetentionGainTracksOverdueReviews(t *testing.T) {
	overdue := planNow.AddDate(0, 0, -7)
	dueToday := planNow
	future := planNow.AddDate(0, 0, 5)

	cases := []struct {
		name string
		next *time.Time
		want float64
	}{
		// 0.5 base + 0.5 * 7/14 overdue headroom.
		{"overdue", &overdue, 0.75},
		{"due today", &dueToday, 0.5},
		{"not yet due", &future, 0},
		{"never reviewed", nil, 0},
	}
	for _, tc := range cases {
		in := baseInput(t)
		st := stateWith("s-found", 0.5, 1)
		st.NextReviewDate = tc.next
		in.States["s-found"] = st
		in.Items = []Item{item("it-1", "s-found", skillgraph.FormatWritten, 2, 20)}

		plan := Build(params(), in)
		if got := plan.Tasks[0].Factors.RetentionGain; got != tc.want {
			t.Errorf("%s: retention gain = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestBuild_ExamROINormalizedAcrossCandidates(t *testing.T) {
	in := baseInput(t)
	in.Debts = map[string]float64{"s-found": 2.0, "s-other": 1.0}
	in.Items = []Item{
		item("it-1", "s-found", skillgraph.FormatWritten, 2, 20),
		item("it-2", "s-other", skillgraph.FormatMCQ, 1, 20),
	}

	plan := Build(params(), in)
	byskill := make(map[string]Factors)
	for _, task := range plan.Tasks {
		byskill[task.SkillID] = task.Factors
	}
	if got := byskill["s-found"].ExamROI; got != 1.0 {
		t.Errorf("s-found exam roi = %f, want 1.0", got)
	}
	if got := byskill["s-other"].ExamROI; got != 0.5 {
		t.Errorf("s-other exam roi = %f, want 0.5", got)
	}
}

func TestBuild_RationaleAlwaysPresent(t *testing.T) {
	in := baseInput(t)
	in.Items = []Item{item("it-1", "s-found", skillgraph.FormatWritten, 2, 20)}

	plan := Build(params(), in)
	if plan.Tasks[0].Rationale == "" {
		t.Error("task rationale is empty")
	}
	if !strings.Contains(plan.Tasks[0].Rationale, "mastery at 0%") {
		t.Errorf("rationale = %q, want the fresh-skill message", plan.Tasks[0].Rationale)
	}
}
