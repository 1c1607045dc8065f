package study

import (
	sess "github.com/abhisek/lexiz/internal/session"
)

// answeredMsg is sent when an answer has been graded and persisted.
type answeredMsg struct {
	Result *sess.AnswerResult
	Err    error
}

// advanceMsg is sent when a correct answer has been on screen long enough.
// Position guards against ticks that outlive their item.
type advanceMsg struct {
	Position int
}

// endMsg triggers the session end flow.
type endMsg struct{}
