// Package study is the screen that walks the learner through a session.
package study

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/clock"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/summary"
	sess "github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

// DefaultAdvanceDelay is how long a correct answer stays on screen.
const DefaultAdvanceDelay = 900 * time.Millisecond

// Config wires the screen to a running session.
type Config struct {
	Session   *sess.Session
	Catalog   *catalog.Catalog
	Generator *quiz.Generator
	Levels    progress.Levels
	Clock     clock.Clock

	// HardAfter grades slow correct answers as hard. Zero disables it.
	HardAfter time.Duration
	// AdvanceDelay is the pause after a correct answer; zero uses the default.
	AdvanceDelay time.Duration
	// OnEnd runs once with the summary before the summary screen opens.
	OnEnd func(*sess.Summary)
}

// pendingAnswer is an answer waiting to be saved. It is kept after a failed
// save so the learner can retry.
type pendingAnswer struct {
	itemID  string
	given   string
	correct bool
	hard    bool
}

// StudyScreen implements screen.Screen for an active session.
type StudyScreen struct {
	cfg  Config
	pool []catalog.Item

	question *quiz.Question
	input    components.TextInput
	choices  components.MultiChoice
	askedAt  time.Time

	pending     *pendingAnswer
	saving      bool
	saveErr     string
	result      *sess.AnswerResult
	quitConfirm bool
	errMsg      string
	ended       bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a StudyScreen. The session must already be started.
func New(cfg Config) *StudyScreen {
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = DefaultAdvanceDelay
	}
	return &StudyScreen{
		cfg:  cfg,
		pool: cfg.Catalog.Items(),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	if !s.loadQuestion() {
		return endCmd
	}
	if s.errMsg != "" {
		return nil
	}
	return s.input.Init()
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) Status() layout.Status {
	ps := s.cfg.Session.Progress()
	return layout.Status{
		Level:  ps.UserStats.Level,
		XP:     ps.UserStats.TotalXP,
		Streak: ps.UserStats.CurrentStreak,
	}
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Finish"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.saveErr != "":
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.result != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.question != nil && s.question.Format == quiz.FormatMultipleChoice:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Pick"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answeredMsg:
		return s.handleAnswered(msg)

	case advanceMsg:
		pos, _ := s.cfg.Session.Position()
		if s.result == nil || msg.Position != pos {
			return s, nil
		}
		return s, s.advance()

	case endMsg:
		return s.handleEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// typing reports whether keystrokes belong to the text input.
func (s *StudyScreen) typing() bool {
	return s.question != nil &&
		s.question.Format == quiz.FormatTyping &&
		s.pending == nil && s.result == nil && !s.quitConfirm
}

// loadQuestion builds the question for the head of the queue. It reports
// false once the queue is exhausted.
func (s *StudyScreen) loadQuestion() bool {
	id, ok := s.cfg.Session.Current()
	if !ok {
		s.question = nil
		return false
	}
	item, found := s.cfg.Catalog.Get(id)
	if !found {
		s.errMsg = "item " + id + " is not in the catalog"
		return true
	}

	s.question = s.cfg.Generator.Question(item, s.pool)
	s.input = components.NewTextInput("Type the translation...", 80)
	correct := -1
	for i, c := range s.question.Choices {
		if c == s.question.Answer {
			correct = i
		}
	}
	s.choices = components.NewMultiChoice(s.question.Choices, correct)
	s.askedAt = s.cfg.Clock.Now()
	s.pending = nil
	s.result = nil
	s.saveErr = ""
	return true
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, endCmd
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, endCmd
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.saving {
		return s, nil
	}

	if s.saveErr != "" {
		switch key {
		case "enter":
			return s, s.save()
		case "esc":
			s.quitConfirm = true
		}
		return s, nil
	}

	if s.result != nil {
		return s, s.advance()
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}
	if s.question == nil {
		return s, nil
	}

	if s.question.Format == quiz.FormatMultipleChoice {
		s.choices, _ = s.choices.Update(msg)
		if given, ok := s.choices.Chosen(); ok {
			return s, s.submit(given)
		}
		return s, nil
	}

	if key == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit grades given against the current question and saves the answer.
func (s *StudyScreen) submit(given string) tea.Cmd {
	correct := quiz.Check(s.question, given)
	hard := correct && s.cfg.HardAfter > 0 &&
		s.cfg.Clock.Now().Sub(s.askedAt) > s.cfg.HardAfter

	s.pending = &pendingAnswer{
		itemID:  s.question.Item.ID,
		given:   given,
		correct: correct,
		hard:    hard,
	}
	s.input.Submit(correct)
	return s.save()
}

func (s *StudyScreen) save() tea.Cmd {
	if s.pending == nil {
		return nil
	}
	s.saving = true
	s.saveErr = ""
	p := *s.pending
	session := s.cfg.Session
	return func() tea.Msg {
		res, err := session.AnswerCorrect(context.Background(), p.itemID, p.correct, p.hard)
		return answeredMsg{Result: res, Err: err}
	}
}

func (s *StudyScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		if errors.Is(msg.Err, sess.ErrSessionComplete) {
			return s, endCmd
		}
		s.saveErr = msg.Err.Error()
		return s, nil
	}

	s.result = msg.Result
	if msg.Result.Outcome.Correct && msg.Result.CanAdvance {
		pos, _ := s.cfg.Session.Position()
		return s, tea.Tick(s.cfg.AdvanceDelay, func(time.Time) tea.Msg {
			return advanceMsg{Position: pos}
		})
	}
	return s, nil
}

// advance opens the gate if needed and moves to the next item.
func (s *StudyScreen) advance() tea.Cmd {
	if !s.cfg.Session.CanAdvance() {
		if err := s.cfg.Session.Acknowledge(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
	}
	if err := s.cfg.Session.Advance(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if !s.loadQuestion() {
		return endCmd
	}
	if s.errMsg != "" {
		return nil
	}
	return s.input.Init()
}

func (s *StudyScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	s.ended = true

	sum := s.cfg.Session.End(context.Background())
	if s.cfg.OnEnd != nil {
		s.cfg.OnEnd(sum)
	}
	lp := s.cfg.Levels.Progress(s.cfg.Session.Progress().UserStats.TotalXP)

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, lp)}
	}
}

func endCmd() tea.Msg { return endMsg{} }
