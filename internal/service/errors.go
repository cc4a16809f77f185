package service

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongPassword is returned when an unlock password does not match.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrLocked is returned for content behind a password that has not been
	// unlocked yet.
	ErrLocked = errors.New("locked")
)

// LockedError names the catalog item gating a lesson. It matches ErrLocked.
type LockedError struct {
	LessonID string
	ItemID   string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("lesson %s is locked (unlock item %s)", e.LessonID, e.ItemID)
}

func (e *LockedError) Is(target error) bool { return target == ErrLocked }
