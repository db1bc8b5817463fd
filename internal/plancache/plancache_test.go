package plancache

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/planner"
)

func TestNopCacheAlwaysMisses(t *testing.T) {
	c := NewNop()
	ctx := context.Background()
	id := uuid.New()

	if _, err := c.Get(ctx, id); !errors.Is(err, ErrMiss) {
		t.Errorf("Get err = %v, want ErrMiss", err)
	}
	if err := c.Set(ctx, id, &planner.Plan{BudgetMinutes: 60}); err != nil {
		t.Errorf("Set err = %v, want nil", err)
	}
	if _, err := c.Get(ctx, id); !errors.Is(err, ErrMiss) {
		t.Errorf("Get after Set err = %v, want ErrMiss", err)
	}
	if err := c.Invalidate(ctx, id); err != nil {
		t.Errorf("Invalidate err = %v, want nil", err)
	}
}

func TestPlanKeyIsPerUser(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	if planKey(a) == planKey(b) {
		t.Errorf("planKey(%s) == planKey(%s)", a, b)
	}
	if want := "plan:" + a.String(); planKey(a) != want {
		t.Errorf("planKey = %s, want %s", planKey(a), want)
	}
}
