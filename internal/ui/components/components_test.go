package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestMultiChoice_Navigate(t *testing.T) {
	m := NewMultiChoice([]string{"cat", "dog", "bird"}, 1)

	m, _ = m.Update(press(tea.KeyUp, ""))
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(press(tea.KeyDown, ""))
	m, _ = m.Update(press(tea.KeyDown, ""))
	m, _ = m.Update(press(tea.KeyDown, ""))
	assert.Equal(t, 2, m.Selected)

	_, ok := m.Chosen()
	assert.False(t, ok)

	m, _ = m.Update(press(tea.KeyEnter, ""))
	got, ok := m.Chosen()
	assert.True(t, ok)
	assert.Equal(t, "bird", got)
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := NewMultiChoice([]string{"cat", "dog"}, 0)

	m, _ = m.Update(press('9', "9"))
	assert.False(t, m.Submitted)

	m, _ = m.Update(press('2', "2"))
	got, ok := m.Chosen()
	assert.True(t, ok)
	assert.Equal(t, "dog", got)

	// frozen after submission
	m, _ = m.Update(press('1', "1"))
	assert.Equal(t, 1, m.ChosenIndex)
	assert.Contains(t, m.View(), "2)  dog")
}

func TestProgressBar_Width(t *testing.T) {
	bar := NewProgressBar("Lv 2", 0.5, Fraction(30, 60), 40)
	assert.Equal(t, 40, lipgloss.Width(bar.View()))

	over := NewProgressBar("", 3, "", 10)
	assert.Equal(t, 10, lipgloss.Width(over.View()))
}

func TestTextInput_Submit(t *testing.T) {
	in := NewTextInput("answer", 40)
	assert.False(t, in.Submitted())
	in.Submit(true)
	assert.True(t, in.Submitted())
}
