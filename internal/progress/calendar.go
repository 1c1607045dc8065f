package progress

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the calendar-day key format used for DailyStat and streaks.
const DateLayout = "2006-01-02"

// Calendar maps instants onto calendar days in a single time zone. Every day
// boundary in this package goes through one Calendar so that streaks and
// daily stats never disagree about what "today" is.
type Calendar struct {
	// Location defaults to time.Local when nil.
	Location *time.Location
}

// UTC is a Calendar with UTC day boundaries.
var UTC = Calendar{Location: time.UTC}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t to the calendar's zone.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc())
}

// Date returns the calendar-day key of t.
func (c Calendar) Date(t time.Time) string {
	return t.In(c.loc()).Format(DateLayout)
}

// DayBefore returns the key of the day preceding date.
func DayBefore(date string) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", errors.Wrapf(err, "parse date %q", date)
	}
	return d.AddDate(0, 0, -1).Format(DateLayout), nil
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b string) (int, error) {
	da, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, errors.Wrapf(err, "parse date %q", a)
	}
	db, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, errors.Wrapf(err, "parse date %q", b)
	}
	return int(db.Sub(da).Hours() / 24), nil
}
