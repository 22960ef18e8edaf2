package service

import "errors"

// Precondition violations the client can correct. Each maps to a
// distinct HTTP status in the api package.
var (
	// ErrDuplicateActiveSession: the user must resume or abandon the
	// existing session before starting a new one.
	ErrDuplicateActiveSession = errors.New("user already has an active session")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionNotActive       = errors.New("session is not active")
	// ErrQuestionMismatch: the submitted question id is not the
	// session's most recently served question.
	ErrQuestionMismatch = errors.New("question does not match the current question")
	// ErrSessionExpired: the duration elapsed before the call arrived;
	// the session has been transitioned to time_expired as a side
	// effect and a final report is available.
	ErrSessionExpired = errors.New("session duration has expired")
	// ErrInvalidDuration rejects non-positive exam durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// errBankExhausted is internal: the picker found no questions in
	// any band. The engine converts it to graceful early completion,
	// never surfaces it to a caller. At session start (nothing served
	// yet) it becomes ErrNoQuestions instead.
	errBankExhausted = errors.New("question bank exhausted")
	// ErrNoQuestions: a session cannot start against an empty bank.
	ErrNoQuestions = errors.New("no questions available")
)
