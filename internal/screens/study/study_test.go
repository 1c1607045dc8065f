package study

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/clock"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	sess "github.com/abhisek/lexiz/internal/session"
)

var start = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakePersister struct {
	err   error
	saves int
}

func (f *fakePersister) Save(_ context.Context, _ *progress.Store) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Item{
		{ID: "chat", Term: "le chat", Translation: "cat", Category: "animals"},
		{ID: "chien", Term: "le chien", Translation: "dog", Category: "animals"},
		{ID: "oiseau", Term: "l'oiseau", Translation: "bird", Category: "animals"},
		{ID: "poisson", Term: "le poisson", Translation: "fish", Category: "animals"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

type fixture struct {
	screen    *StudyScreen
	session   *sess.Session
	persister *fakePersister
	ended     *sess.Summary
}

// newFixture starts a session over the first n catalog items.
func newFixture(t *testing.T, n int, typingRatio float64) *fixture {
	t.Helper()
	cat := testCatalog(t)
	clk := clock.NewManual(start)
	f := &fixture{persister: &fakePersister{}}

	s, err := sess.Start(context.Background(), sess.Deps{
		Ledger:    progress.NewLedger(progress.UTC),
		Persister: f.persister,
		Clock:     clk,
	}, nil, cat.IDs()[:n], sess.DefaultOptions())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.session = s

	gen := quiz.NewGenerator(rand.New(rand.NewSource(1)))
	gen.TypingRatio = typingRatio
	f.screen = New(Config{
		Session:   s,
		Catalog:   cat,
		Generator: gen,
		Levels:    progress.DefaultLevels(),
		Clock:     clk,
		OnEnd:     func(sum *sess.Summary) { f.ended = sum },
	})
	f.screen.Init()
	return f
}

// run executes cmd and feeds its message back into the screen.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := f.screen.Update(cmd())
	return next
}

func (f *fixture) typeAnswer(t *testing.T, answer string) tea.Cmd {
	t.Helper()
	f.screen.input.Model.SetValue(answer)
	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	return cmd
}

func TestStudyScreen_Title(t *testing.T) {
	f := newFixture(t, 2, 1)
	if f.screen.Title() != "Study" {
		t.Errorf("Title = %q, want %q", f.screen.Title(), "Study")
	}
}

func TestStudyScreen_EmptyQueueEnds(t *testing.T) {
	f := newFixture(t, 0, 1)
	cmd := f.screen.Init()
	if cmd == nil {
		t.Fatal("expected end command")
	}
	if _, ok := cmd().(endMsg); !ok {
		t.Errorf("expected endMsg, got %T", cmd())
	}
}

func TestStudyScreen_CorrectAnswerAutoAdvances(t *testing.T) {
	f := newFixture(t, 2, 1)
	if f.screen.question.Format != quiz.FormatTyping {
		t.Fatalf("expected typing question")
	}

	tick := f.run(t, f.typeAnswer(t, "  CAT "))
	if f.screen.result == nil || !f.screen.result.Outcome.Correct {
		t.Fatal("expected a correct result")
	}
	if tick == nil {
		t.Fatal("expected an advance tick after a correct answer")
	}
	if f.persister.saves != 1 {
		t.Errorf("saves = %d, want 1", f.persister.saves)
	}

	f.screen.Update(advanceMsg{Position: 0})
	if pos, _ := f.session.Position(); pos != 1 {
		t.Errorf("position = %d, want 1", pos)
	}
	if f.screen.question.Item.ID != "chien" {
		t.Errorf("question for %q, want chien", f.screen.question.Item.ID)
	}
	if f.screen.result != nil {
		t.Error("expected feedback cleared for the next item")
	}
}

func TestStudyScreen_StaleAdvanceIgnored(t *testing.T) {
	f := newFixture(t, 2, 1)
	f.run(t, f.typeAnswer(t, "cat"))

	f.screen.Update(advanceMsg{Position: 5})
	if pos, _ := f.session.Position(); pos != 0 {
		t.Errorf("position = %d, want 0", pos)
	}
}

func TestStudyScreen_IncorrectWaitsForKey(t *testing.T) {
	f := newFixture(t, 2, 1)

	next := f.run(t, f.typeAnswer(t, "horse"))
	if next != nil {
		t.Error("expected no auto-advance after an incorrect answer")
	}
	if f.screen.result.Outcome.Correct {
		t.Fatal("expected an incorrect result")
	}
	if f.session.CanAdvance() {
		t.Error("gate should hold until acknowledged")
	}

	f.screen.Update(keyPress(' '))
	if pos, _ := f.session.Position(); pos != 1 {
		t.Errorf("position = %d, want 1", pos)
	}
}

func TestStudyScreen_EmptyTypingIgnored(t *testing.T) {
	f := newFixture(t, 1, 1)
	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for an empty answer")
	}
	if f.screen.pending != nil {
		t.Error("expected nothing pending")
	}
}

func TestStudyScreen_SaveFailureRetries(t *testing.T) {
	f := newFixture(t, 1, 1)
	f.persister.err = errors.New("disk full")

	f.run(t, f.typeAnswer(t, "cat"))
	if f.screen.saveErr == "" {
		t.Fatal("expected a save error")
	}
	if f.session.HasAnswered() {
		t.Error("session should not move on a failed save")
	}

	f.persister.err = nil
	_, retry := f.screen.Update(specialKey(tea.KeyEnter))
	f.run(t, retry)
	if f.screen.saveErr != "" {
		t.Errorf("unexpected error after retry: %s", f.screen.saveErr)
	}
	if !f.session.HasAnswered() {
		t.Error("expected the retried answer to be recorded")
	}
}

func TestStudyScreen_MultipleChoiceByNumber(t *testing.T) {
	f := newFixture(t, 4, 0)
	q := f.screen.question
	if q.Format != quiz.FormatMultipleChoice {
		t.Fatalf("expected multiple choice, got %s", q.Format)
	}

	idx := f.screen.choices.CorrectIndex
	_, cmd := f.screen.Update(keyPress(rune('1' + idx)))
	f.run(t, cmd)
	if f.screen.result == nil || !f.screen.result.Outcome.Correct {
		t.Error("expected the chosen answer to be correct")
	}
}

func TestStudyScreen_LastItemEnds(t *testing.T) {
	f := newFixture(t, 1, 1)
	f.run(t, f.typeAnswer(t, "cat"))

	_, cmd := f.screen.Update(advanceMsg{Position: 0})
	if cmd == nil {
		t.Fatal("expected end command")
	}
	replace := f.run(t, cmd)
	if replace == nil {
		t.Fatal("expected navigation to the summary")
	}
	msg, ok := replace().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", replace())
	}
	if msg.Screen.Title() != "Session Summary" {
		t.Errorf("next screen = %q", msg.Screen.Title())
	}
	if f.ended == nil || !f.ended.Completed || f.ended.Correct != 1 {
		t.Errorf("unexpected summary %+v", f.ended)
	}
}

func TestStudyScreen_QuitConfirm(t *testing.T) {
	f := newFixture(t, 2, 1)

	var scr screen.Screen = f.screen
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	if !f.screen.quitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}
	scr, _ = scr.Update(keyPress('n'))
	if f.screen.quitConfirm {
		t.Fatal("expected dialog dismissed")
	}

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	f.run(t, cmd)
	if f.ended == nil || f.ended.Completed {
		t.Errorf("expected an incomplete summary, got %+v", f.ended)
	}
}

func TestStudyScreen_EndOnlyOnce(t *testing.T) {
	f := newFixture(t, 1, 1)
	calls := 0
	f.screen.cfg.OnEnd = func(*sess.Summary) { calls++ }

	f.screen.Update(endMsg{})
	_, cmd := f.screen.Update(endMsg{})
	if cmd != nil || calls != 1 {
		t.Errorf("OnEnd calls = %d, want 1", calls)
	}
}

func TestStudyScreen_ViewAndStatus(t *testing.T) {
	f := newFixture(t, 2, 1)
	if f.screen.View(80, 20) == "" {
		t.Error("expected non-empty view")
	}
	f.run(t, f.typeAnswer(t, "cat"))
	st := f.screen.Status()
	if st.XP != 10 || st.Level != 1 || st.Streak != 1 {
		t.Errorf("Status = %+v", st)
	}
	if len(f.screen.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
