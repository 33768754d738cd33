package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/skipjar/skipjar/internal/model"
)

var errMissing = errors.New("missing")

type stubFinder struct {
	goals  map[string]*model.Goal
	active *model.Goal
}

func (f stubFinder) GoalByID(_ context.Context, ownerID, goalID string) (*model.Goal, error) {
	g, ok := f.goals[goalID]
	if !ok || g.OwnerID != ownerID {
		return nil, errMissing
	}
	return g, nil
}

func (f stubFinder) ActiveGoal(_ context.Context, ownerID string) (*model.Goal, bool, error) {
	if f.active == nil || f.active.OwnerID != ownerID {
		return nil, false, nil
	}
	return f.active, true, nil
}

func TestResolveGoal(t *testing.T) {
	ctx := context.Background()
	explicit := &model.Goal{ID: "g1", OwnerID: "u1"}
	active := &model.Goal{ID: "g2", OwnerID: "u1", Status: model.GoalStatusActive}
	finder := stubFinder{goals: map[string]*model.Goal{"g1": explicit}, active: active}

	res, err := ResolveGoal(ctx, finder, "u1", TargetFromID("g1"))
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	if r, ok := res.(Resolved); !ok || r.Goal.ID != "g1" {
		t.Errorf("explicit resolved to %#v", res)
	}

	res, err = ResolveGoal(ctx, finder, "u1", TargetFromID(""))
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if r, ok := res.(Resolved); !ok || r.Goal.ID != "g2" {
		t.Errorf("default resolved to %#v", res)
	}

	res, err = ResolveGoal(ctx, finder, "u2", DefaultActiveGoal{})
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if _, ok := res.(NoneActive); !ok {
		t.Errorf("expected NoneActive, got %#v", res)
	}

	if _, err := ResolveGoal(ctx, finder, "u2", ExplicitGoal{ID: "g1"}); !errors.Is(err, errMissing) {
		t.Errorf("foreign goal: err = %v", err)
	}
}

func TestActorFromID(t *testing.T) {
	if _, ok := ActorFromID("").(AnonymousActor); !ok {
		t.Error("empty id should be anonymous")
	}
	if a, ok := ActorFromID("u1").(IdentifiedActor); !ok || a.UserID != "u1" {
		t.Errorf("got %#v", a)
	}
}
