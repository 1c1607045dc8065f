package progress

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/srs"
)

// SchemaVersion is written into every encoded store. Documents without a
// version come from the original browser storage and are migrated on read.
const SchemaVersion = 2

// Codec converts a Store to and from its persisted JSON document.
type Codec struct {
	Levels    Levels
	DailyGoal int
}

// DefaultCodec returns a codec with the default level curve and daily goal.
func DefaultCodec() Codec {
	return Codec{Levels: DefaultLevels(), DailyGoal: DefaultDailyGoal}
}

type document struct {
	Version    int                  `json:"version"`
	Items      map[string]srs.State `json:"items"`
	DailyStats []DailyStat          `json:"dailyStats"`
	UserStats  UserStats            `json:"userStats"`
}

// storedDocument accepts both the current shape and the legacy one.
type storedDocument struct {
	Version    int                  `json:"version"`
	Items      map[string]srs.State `json:"items"`
	DailyStats []storedDailyStat    `json:"dailyStats"`
	UserStats  *UserStats           `json:"userStats"`

	WordProgress  map[string]legacyCard `json:"wordProgress"`
	CurrentStreak *int                  `json:"currentStreak"`
	LastStudyDate *string               `json:"lastStudyDate"`
}

type storedDailyStat struct {
	DailyStat
	CardsStudied *int     `json:"cardsStudied"`
	Accuracy     *float64 `json:"accuracy"`
}

// Legacy per-word records use epoch milliseconds.
type legacyCard struct {
	WordID         string     `json:"wordId"`
	Correct        int        `json:"correct"`
	Incorrect      int        `json:"incorrect"`
	LastReviewedAt int64      `json:"lastReviewedAt"`
	SRS            *legacySRS `json:"srs"`
}

type legacySRS struct {
	EaseFactor     float64 `json:"easeFactor"`
	Interval       int     `json:"interval"`
	Repetitions    int     `json:"repetitions"`
	NextReviewDate int64   `json:"nextReviewDate"`
	LastReviewDate int64   `json:"lastReviewDate"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
}

// Encode serialises s in the current schema.
func (c Codec) Encode(s *Store) ([]byte, error) {
	doc := document{
		Version:    SchemaVersion,
		Items:      s.Items,
		DailyStats: s.DailyStats,
		UserStats:  s.UserStats,
	}
	if doc.Items == nil {
		doc.Items = map[string]srs.State{}
	}
	if doc.DailyStats == nil {
		doc.DailyStats = []DailyStat{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal progress")
	}
	return b, nil
}

// Decode parses a persisted document. An empty input yields a fresh store.
// Absent fields take their documented defaults and the level is always
// recomputed from the XP total.
func (c Codec) Decode(data []byte) (*Store, error) {
	out := NewStore(c.Levels, c.DailyGoal)
	if len(data) == 0 {
		return out, nil
	}

	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal progress")
	}

	for id, st := range doc.Items {
		out.Items[id] = normalizeState(id, st)
	}
	for id, card := range doc.WordProgress {
		if _, ok := out.Items[id]; ok {
			continue
		}
		out.Items[id] = migrateCard(id, card)
	}

	for _, d := range doc.DailyStats {
		day := d.DailyStat
		if day.Date == "" {
			continue
		}
		if d.CardsStudied != nil && day.ItemsStudied == 0 {
			day.ItemsStudied = *d.CardsStudied
		}
		if d.Accuracy != nil && day.AccuracyPercent == 0 {
			day.AccuracyPercent = *d.Accuracy
		}
		out.DailyStats = append(out.DailyStats, day)
	}

	goal := out.UserStats.DailyGoal
	if doc.UserStats != nil {
		out.UserStats = *doc.UserStats
	} else {
		if doc.CurrentStreak != nil {
			out.UserStats.CurrentStreak = *doc.CurrentStreak
		}
		if doc.LastStudyDate != nil {
			out.UserStats.LastStudyDate = *doc.LastStudyDate
		}
	}

	stats := &out.UserStats
	stats.TotalXP = max(0, stats.TotalXP)
	stats.CurrentStreak = max(0, stats.CurrentStreak)
	stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
	if stats.DailyGoal <= 0 {
		stats.DailyGoal = goal
	}
	stats.Level = c.Levels.LevelFor(stats.TotalXP)
	return out, nil
}

func normalizeState(id string, st srs.State) srs.State {
	st.ItemID = id
	if st.EaseFactor == 0 {
		st.EaseFactor = srs.DefaultEaseFactor
	}
	st.EaseFactor = max(srs.MinEaseFactor, min(srs.MaxEaseFactor, st.EaseFactor))
	st.Interval = max(0, min(srs.MaxInterval, st.Interval))
	st.Repetitions = max(0, st.Repetitions)
	return st
}

func migrateCard(id string, card legacyCard) srs.State {
	if card.SRS == nil {
		// Seen before scheduling existed: due right away, counters kept.
		st := srs.State{
			ItemID:         id,
			EaseFactor:     srs.DefaultEaseFactor,
			LastReviewedAt: fromMillis(card.LastReviewedAt),
			CorrectCount:   card.Correct,
			IncorrectCount: card.Incorrect,
		}
		st.NextReviewDue = st.LastReviewedAt
		return st
	}
	s := card.SRS
	return normalizeState(id, srs.State{
		EaseFactor:     s.EaseFactor,
		Interval:       s.Interval,
		Repetitions:    s.Repetitions,
		NextReviewDue:  fromMillis(s.NextReviewDate),
		LastReviewedAt: fromMillis(s.LastReviewDate),
		CorrectCount:   s.Correct,
		IncorrectCount: s.Incorrect,
	})
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
