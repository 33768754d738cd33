package service

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyLogged = errors.New("already skipped today")
	ErrNoActiveGoal  = errors.New("no active goal found")
	ErrHabitNotFound = errors.New("habit not found")
	ErrGoalNotFound  = errors.New("goal not found")
)

// PersistenceError is a storage failure. The request is not retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
