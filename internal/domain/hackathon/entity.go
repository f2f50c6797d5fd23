package hackathon

import (
	"time"

	"github.com/google/uuid"
)

type Hackathon struct {
	ID          uuid.UUID
	Name        string
	Description string
	Location    string
	URL         string
	Source      string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// CalendarMonth buckets hackathons by month for the calendar view.
type CalendarMonth struct {
	Year       int
	Month      time.Month
	Hackathons []Hackathon
}
