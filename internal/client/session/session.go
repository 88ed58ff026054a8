// Package session models the lifecycle of one upload attempt.
//
// States: idle → uploading → {succeeded, failed}. A terminal session goes
// back to idle only through Reset, which a fresh selection performs before
// the next Begin. Session is a value: every transition returns a new
// Session and leaves the receiver untouched.
//
// Tracker owns the single active session, tags it with a generation number
// and cancels the superseded upload when a new one starts.
package session

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// validTransitions is the transition matrix. uploading → idle is the
// supersede path taken by Reset.
var validTransitions = map[Status]map[Status]bool{
	StatusIdle:      {StatusUploading: true},
	StatusUploading: {StatusSucceeded: true, StatusFailed: true, StatusIdle: true},
	StatusSucceeded: {StatusIdle: true},
	StatusFailed:    {StatusIdle: true},
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid session transition %s -> %s", e.From, e.To)
}

// Session is the observable record of one upload attempt.
//
// ProgressPercent is only meaningful while uploading and is 0 otherwise.
// ResultURL is set only when succeeded, ErrorMessage only when failed.
// A succeeded session may have an empty ResultURL when the endpoint's
// response carried no URL.
type Session struct {
	ID              string
	Generation      uint64
	Status          Status
	ProgressPercent float64
	ResultURL       string
	ErrorMessage    string
	Files           []string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// New returns an idle session.
func New() Session {
	return Session{Status: StatusIdle}
}

// IsTerminal reports whether s is succeeded or failed.
func (s Session) IsTerminal() bool {
	return s.Status == StatusSucceeded || s.Status == StatusFailed
}

// CanTransitionTo reports whether the matrix allows s.Status → target.
func (s Session) CanTransitionTo(target Status) bool {
	return validTransitions[s.Status][target]
}

func (s Session) check(target Status) error {
	if !s.CanTransitionTo(target) {
		return &TransitionError{From: s.Status, To: target}
	}
	return nil
}

// Begin moves an idle session to uploading with progress 0.
func (s Session) Begin(gen uint64, id string, files []string, now time.Time) (Session, error) {
	if err := s.check(StatusUploading); err != nil {
		return s, err
	}
	return Session{
		ID:         id,
		Generation: gen,
		Status:     StatusUploading,
		Files:      append([]string(nil), files...),
		StartedAt:  now,
	}, nil
}

// Progress records a new percentage. Values are clamped to [0, 100] and a
// value lower than the current one leaves the session unchanged.
func (s Session) Progress(percent float64) (Session, error) {
	if s.Status != StatusUploading {
		return s, &TransitionError{From: s.Status, To: StatusUploading}
	}
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	if percent > s.ProgressPercent {
		s.ProgressPercent = percent
	}
	return s, nil
}

// Succeed ends the upload with url, which may be empty.
func (s Session) Succeed(url string, now time.Time) (Session, error) {
	if err := s.check(StatusSucceeded); err != nil {
		return s, err
	}
	s.Status = StatusSucceeded
	s.ProgressPercent = 0
	s.ResultURL = url
	s.ErrorMessage = ""
	s.FinishedAt = now
	return s, nil
}

// Fail ends the upload with a user-facing message.
func (s Session) Fail(message string, now time.Time) (Session, error) {
	if err := s.check(StatusFailed); err != nil {
		return s, err
	}
	s.Status = StatusFailed
	s.ProgressPercent = 0
	s.ResultURL = ""
	s.ErrorMessage = message
	s.FinishedAt = now
	return s, nil
}

// Reset returns an idle session. The generation is kept so a later Begin
// can be compared against it.
func (s Session) Reset() Session {
	return Session{Generation: s.Generation, Status: StatusIdle}
}
