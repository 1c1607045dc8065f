package srs

import (
	"fmt"
	"math"
	"time"
)

// Overview summarises the review workload across a collection.
type Overview struct {
	DueNow      int
	DueTomorrow int
	DueThisWeek int
	Mastered    int
	Learning    int
	New         int
}

// BuildOverview counts items by status. Items with no successful repetition
// in a row, including identifiers in itemIDs without a state, count as new
// and are left out of the due buckets; states without a matching identifier are ignored
// unless itemIDs is nil, in which case every state is counted.
func BuildOverview(itemIDs []string, states map[string]State, now time.Time) Overview {
	var o Overview

	visit := func(st State, ok bool) {
		if !ok || st.Repetitions == 0 {
			o.New++
			return
		}
		days := -st.OverdueDays(now)
		switch {
		case days <= 0:
			o.DueNow++
		case days <= 1:
			o.DueTomorrow++
		case days <= 7:
			o.DueThisWeek++
		}
		if st.Interval > MasteredInterval {
			o.Mastered++
		} else {
			o.Learning++
		}
	}

	if itemIDs == nil {
		for _, st := range states {
			visit(st, true)
		}
		return o
	}
	for _, id := range itemIDs {
		st, ok := states[id]
		visit(st, ok)
	}
	return o
}

// NextReviewText renders the time until the next review for display.
func NextReviewText(s State, now time.Time) string {
	diff := s.NextReviewDue.Sub(now)
	if diff <= 0 {
		return "Due now"
	}

	hours := diff.Hours()
	days := hours / 24
	switch {
	case hours < 1:
		return "Due soon"
	case hours < 24:
		return fmt.Sprintf("In %d hours", int(math.Round(hours)))
	case days < 7:
		return fmt.Sprintf("In %d days", int(math.Round(days)))
	case days < 30:
		return fmt.Sprintf("In %d weeks", int(math.Round(days/7)))
	default:
		return fmt.Sprintf("In %d months", int(math.Round(days/30)))
	}
}
