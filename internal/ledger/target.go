package ledger

import (
	"context"
	"fmt"

	"github.com/skipjar/skipjar/internal/model"
)

// GoalTarget selects the goal a skip funds: ExplicitGoal or DefaultActiveGoal.
type GoalTarget interface {
	goalTarget()
}

type ExplicitGoal struct {
	ID string
}

type DefaultActiveGoal struct{}

func (ExplicitGoal) goalTarget()      {}
func (DefaultActiveGoal) goalTarget() {}

func TargetFromID(goalID string) GoalTarget {
	if goalID == "" {
		return DefaultActiveGoal{}
	}
	return ExplicitGoal{ID: goalID}
}

// Actor is the party logging a skip: IdentifiedActor or AnonymousActor.
type Actor interface {
	actor()
}

type IdentifiedActor struct {
	UserID string
}

type AnonymousActor struct{}

func (IdentifiedActor) actor() {}
func (AnonymousActor) actor()  {}

func ActorFromID(userID string) Actor {
	if userID == "" {
		return AnonymousActor{}
	}
	return IdentifiedActor{UserID: userID}
}

// GoalFinder is the lookup surface the resolution policy needs.
type GoalFinder interface {
	GoalByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error)
	ActiveGoal(ctx context.Context, ownerID string) (*model.Goal, bool, error)
}

// Resolution is Resolved or NoneActive.
type Resolution interface {
	resolution()
}

type Resolved struct {
	Goal *model.Goal
}

type NoneActive struct{}

func (Resolved) resolution()   {}
func (NoneActive) resolution() {}

// ResolveGoal picks the goal a skip funds for owner. An explicit goal that
// does not exist surfaces the finder's error unchanged.
func ResolveGoal(ctx context.Context, finder GoalFinder, ownerID string, target GoalTarget) (Resolution, error) {
	switch t := target.(type) {
	case ExplicitGoal:
		goal, err := finder.GoalByID(ctx, ownerID, t.ID)
		if err != nil {
			return nil, err
		}
		return Resolved{Goal: goal}, nil
	case DefaultActiveGoal:
		goal, ok, err := finder.ActiveGoal(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return NoneActive{}, nil
		}
		return Resolved{Goal: goal}, nil
	default:
		panic(fmt.Sprintf("ledger: unhandled goal target %T", target))
	}
}
