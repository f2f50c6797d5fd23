package dto

import (
	"time"

	"hackmatch/internal/domain/hackathon"

	"github.com/google/uuid"
)

type HackathonResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func FromHackathon(h hackathon.Hackathon) HackathonResponse {
	return HackathonResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Location:    h.Location,
		URL:         h.URL,
		Source:      h.Source,
		StartDate:   h.StartDate,
		EndDate:     h.EndDate,
	}
}

func FromHackathons(items []hackathon.Hackathon) []HackathonResponse {
	out := make([]HackathonResponse, 0, len(items))
	for _, h := range items {
		out = append(out, FromHackathon(h))
	}
	return out
}

type CalendarResponse struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	Hackathons []HackathonResponse `json:"hackathons"`
}

func FromCalendar(cal hackathon.CalendarMonth) CalendarResponse {
	return CalendarResponse{
		Year:       cal.Year,
		Month:      int(cal.Month),
		Hackathons: FromHackathons(cal.Hackathons),
	}
}
