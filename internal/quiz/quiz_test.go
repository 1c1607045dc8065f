package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/catalog"
)

var pool = []catalog.Item{
	{ID: "chat", Term: "chat", Translation: "cat"},
	{ID: "chien", Term: "chien", Translation: "dog"},
	{ID: "cheval", Term: "cheval", Translation: "horse"},
	{ID: "oiseau", Term: "oiseau", Translation: "bird"},
	{ID: "minou", Term: "minou", Translation: "Cat"},
	{ID: "poisson", Term: "poisson", Translation: "fish"},
}

func TestQuestion_MultipleChoice(t *testing.T) {
	g := &Generator{Rand: rand.New(rand.NewSource(1)), TypingRatio: 0}

	for i := 0; i < 20; i++ {
		q := g.Question(pool[0], pool)
		require.Equal(t, FormatMultipleChoice, q.Format)
		require.Len(t, q.Choices, Distractors+1)
		assert.Contains(t, q.Choices, "cat")
		assert.NotContains(t, q.Choices, "Cat", "synonym translation must not appear as a distractor")

		seen := map[string]bool{}
		for _, c := range q.Choices {
			assert.False(t, seen[c], "duplicate choice %q", c)
			seen[c] = true
		}
	}
}

func TestQuestion_Typing(t *testing.T) {
	g := &Generator{Rand: rand.New(rand.NewSource(1)), TypingRatio: 1}
	q := g.Question(pool[1], pool)
	assert.Equal(t, FormatTyping, q.Format)
	assert.Empty(t, q.Choices)
	assert.Equal(t, "chien", q.Prompt)
	assert.Equal(t, "dog", q.Answer)
}

func TestQuestion_SmallPoolFallsBackToTyping(t *testing.T) {
	g := &Generator{Rand: rand.New(rand.NewSource(1)), TypingRatio: 0}
	q := g.Question(pool[0], pool[:3])
	assert.Equal(t, FormatTyping, q.Format)
}

func TestQuestion_Deterministic(t *testing.T) {
	a := &Generator{Rand: rand.New(rand.NewSource(42)), TypingRatio: 0.2}
	b := &Generator{Rand: rand.New(rand.NewSource(42)), TypingRatio: 0.2}
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Question(pool[2], pool), b.Question(pool[2], pool))
	}
}

func TestQuestion_TypingRatio(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)))
	typing := 0
	const n = 2000
	for i := 0; i < n; i++ {
		if g.Question(pool[0], pool).Format == FormatTyping {
			typing++
		}
	}
	assert.InDelta(t, DefaultTypingRatio, float64(typing)/n, 0.05)
}

func TestCheck(t *testing.T) {
	mc := &Question{Format: FormatMultipleChoice, Answer: "train station", Choices: []string{"dog", "train station", "cat", "bird"}}
	typing := &Question{Format: FormatTyping, Answer: "train station"}

	tests := []struct {
		name   string
		q      *Question
		answer string
		want   bool
	}{
		{"mc by index", mc, "2", true},
		{"mc wrong index", mc, "1", false},
		{"mc out of range index", mc, "9", false},
		{"mc by text", mc, "Train Station", true},
		{"typing exact", typing, "train station", true},
		{"typing case and spacing", typing, "  Train   STATION ", true},
		{"typing wrong", typing, "station", false},
		{"empty", typing, "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.q, tt.answer))
		})
	}
}
