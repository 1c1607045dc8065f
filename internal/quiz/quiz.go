// Package quiz turns catalog items into questions for the study screen.
package quiz

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/abhisek/lexiz/internal/catalog"
)

// Format is how a question is answered.
type Format string

const (
	FormatMultipleChoice Format = "multiple-choice"
	FormatTyping         Format = "typing"
)

const (
	// DefaultTypingRatio is the share of questions asked as typing drills.
	DefaultTypingRatio = 0.2

	// Distractors is the number of wrong choices offered.
	Distractors = 3
)

// Question asks for the translation of one item.
type Question struct {
	Item    catalog.Item
	Format  Format
	Prompt  string
	Answer  string
	Choices []string // multiple choice only
}

// Generator builds questions. Rand must be set; tests seed it.
type Generator struct {
	Rand        *rand.Rand
	TypingRatio float64
}

// NewGenerator returns a generator with the default typing ratio.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{Rand: r, TypingRatio: DefaultTypingRatio}
}

// Question builds a question for target. Distractors come from pool; when
// the pool cannot supply enough distinct wrong answers the question falls
// back to typing.
func (g *Generator) Question(target catalog.Item, pool []catalog.Item) *Question {
	q := &Question{
		Item:   target,
		Format: FormatTyping,
		Prompt: target.Term,
		Answer: target.Translation,
	}
	if g.Rand.Float64() < g.TypingRatio {
		return q
	}

	wrong := g.distractors(target, pool)
	if len(wrong) < Distractors {
		return q
	}

	q.Format = FormatMultipleChoice
	q.Choices = append(wrong, target.Translation)
	g.Rand.Shuffle(len(q.Choices), func(i, j int) {
		q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
	})
	return q
}

func (g *Generator) distractors(target catalog.Item, pool []catalog.Item) []string {
	seen := map[string]bool{normalize(target.Translation): true}
	var candidates []string
	for _, it := range pool {
		key := normalize(it.Translation)
		if it.ID == target.ID || key == "" || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, it.Translation)
	}
	g.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > Distractors {
		candidates = candidates[:Distractors]
	}
	return candidates
}

// Check reports whether answer is right. Multiple choice accepts the
// 1-based choice number or the choice text.
func Check(q *Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	if q.Format == FormatMultipleChoice {
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(q.Choices) {
			answer = q.Choices[idx-1]
		}
	}
	return normalize(answer) == normalize(q.Answer)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
