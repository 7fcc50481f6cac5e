package attendance

import (
	"fmt"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
)

// Classifier derives a record status from a check-in time and the
// configured expected-arrival threshold. The threshold is injected; there
// is no hardcoded schedule anywhere in the core.
type Classifier struct {
	expectedHour   int
	expectedMinute int
}

func NewClassifier(expectedArrival string) (*Classifier, error) {
	t, err := time.Parse("15:04", expectedArrival)
	if err != nil {
		return nil, fmt.Errorf("invalid expected arrival %q: %w", expectedArrival, err)
	}
	return &Classifier{
		expectedHour:   t.Hour(),
		expectedMinute: t.Minute(),
	}, nil
}

// MinutesLate returns floor((checkIn − expectedArrival) / 1 minute),
// comparing times-of-day only. Negative means early.
func (c *Classifier) MinutesLate(checkIn time.Time) int {
	arrived := checkIn.Hour()*3600 + checkIn.Minute()*60 + checkIn.Second()
	expected := c.expectedHour*3600 + c.expectedMinute*60
	diff := arrived - expected
	if diff < 0 {
		// Floor toward negative infinity for early arrivals.
		return -((-diff + 59) / 60)
	}
	return diff / 60
}

// Classify maps a check-in time to present or late. A nil check-in is
// absent. Arriving exactly at the threshold is present; lateness requires
// a full minute past it. half_day and on_leave are never produced here,
// only via the administrative update path.
func (c *Classifier) Classify(checkIn *time.Time) attendance.Status {
	if checkIn == nil {
		return attendance.StatusAbsent
	}
	if c.MinutesLate(*checkIn) > 0 {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}
