package admin

import (
	"strings"

	"github.com/five82/knowledgehub/internal/blogapi"
)

// Messages shown by the admin panel.
const (
	MsgGranted   = "Access granted! Manual blog generation unlocked."
	MsgDenied    = "Invalid secret. Access denied."
	MsgBusy      = "Generating blog manually..."
	MsgFailed    = "Error generating blog manually."
	msgGenerated = "Blog generated: "
	msgDone      = "Done!"
)

// Verify reports whether input matches expected. Surrounding whitespace in
// input is ignored. An empty expected secret never matches.
//
// This is a client-side equality check against a secret the client already
// holds. It hides the panel; it does not protect the backend, which checks
// the X-Admin-Key header on its own.
func Verify(input, expected string) bool {
	if expected == "" {
		return false
	}
	return strings.TrimSpace(input) == expected
}

// Outcome classifies the panel message for styling.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeOK
	OutcomeError
	OutcomePending
)

// Session is the state of one admin panel. It lives only as long as the
// view; nothing is remembered between runs.
type Session struct {
	Entered    string
	Authorized bool
	Busy       bool
	Message    string
	Outcome    Outcome
}

// Submit checks Entered against expected and sets the panel message.
func (s *Session) Submit(expected string) bool {
	s.Authorized = Verify(s.Entered, expected)
	if s.Authorized {
		s.Message = MsgGranted
		s.Outcome = OutcomeOK
	} else {
		s.Message = MsgDenied
		s.Outcome = OutcomeError
	}
	return s.Authorized
}

// BeginGenerate marks a manual generation as in flight. It returns false when
// the session is locked or a request is already running.
func (s *Session) BeginGenerate() bool {
	if !s.Authorized || s.Busy {
		return false
	}
	s.Busy = true
	s.Message = MsgBusy
	s.Outcome = OutcomePending
	return true
}

// FinishGenerate records the result of the request started by BeginGenerate.
func (s *Session) FinishGenerate(resp blogapi.GenerateResponse, err error) {
	s.Busy = false
	if err != nil {
		s.Message = MsgFailed
		s.Outcome = OutcomeError
		return
	}
	msg := resp.Message
	if msg == "" {
		msg = msgDone
	}
	s.Message = msgGenerated + msg
	s.Outcome = OutcomeOK
}

// Lock forgets the authorization and clears the input.
func (s *Session) Lock() {
	*s = Session{}
}
