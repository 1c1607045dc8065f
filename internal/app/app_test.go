package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

type stubScreen struct {
	keys int
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		s.keys++
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string  { return "stub content" }
func (s *stubScreen) Title() string         { return "Stub" }
func (s *stubScreen) Status() layout.Status { return layout.Status{Level: 4, XP: 450, Streak: 2} }

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := New(&stubScreen{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestUpdate_ForwardsKeys(t *testing.T) {
	s := &stubScreen{}
	m := New(s)
	m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if s.keys != 1 {
		t.Errorf("keys = %d, want 1", s.keys)
	}
}

func TestView_TooSmall(t *testing.T) {
	model, _ := New(&stubScreen{}).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(model.(AppModel).frame(), "Terminal too small") {
		t.Error("expected the min-size message")
	}
}

func TestView_HeaderShowsStatus(t *testing.T) {
	model, _ := New(&stubScreen{}).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	frame := model.(AppModel).frame()
	for _, want := range []string{"Lexiz", "Stub", "Lv 4", "450 XP", "stub content", "Ctrl+C"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}
