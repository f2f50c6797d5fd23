package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hackmatch/internal/domain/hackathon"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

var ErrNoUpcomingHackathon = errors.New("no upcoming hackathon")

const calendarCacheTTL = 10 * time.Minute

// CalendarCache is the slice of the redis client the calendar view needs.
// A nil cache disables caching entirely.
type CalendarCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type HackathonUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (hackathon.Hackathon, error)
	List(ctx context.Context, limit, offset int) ([]hackathon.Hackathon, error)
	Calendar(ctx context.Context, year int, month time.Month) (hackathon.CalendarMonth, error)
	NextUpcoming(ctx context.Context) (hackathon.Hackathon, error)
}

type Hackathons struct {
	hackathons repository.HackathonRepository
	cache      CalendarCache
	now        func() time.Time
}

func NewHackathonUsecase(hackathons repository.HackathonRepository, cache CalendarCache) *Hackathons {
	return &Hackathons{hackathons: hackathons, cache: cache, now: time.Now}
}

func (u *Hackathons) Get(ctx context.Context, id uuid.UUID) (hackathon.Hackathon, error) {
	h, err := u.hackathons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHackathonNotFound) {
			return hackathon.Hackathon{}, ErrHackathonNotFound
		}
		return hackathon.Hackathon{}, ErrInternal
	}
	return h, nil
}

func (u *Hackathons) List(ctx context.Context, limit, offset int) ([]hackathon.Hackathon, error) {
	out, err := u.hackathons.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Calendar returns the hackathons starting in the given month. Zero values
// fall back to the current month.
func (u *Hackathons) Calendar(ctx context.Context, year int, month time.Month) (hackathon.CalendarMonth, error) {
	now := u.now().UTC()
	if year <= 0 {
		year = now.Year()
	}
	if month < time.January || month > time.December {
		month = now.Month()
	}

	key := fmt.Sprintf("hackathons:calendar:%04d-%02d", year, int(month))
	if u.cache != nil {
		var cached hackathon.CalendarMonth
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	items, err := u.hackathons.ListStartingBetween(ctx, from, to)
	if err != nil {
		return hackathon.CalendarMonth{}, ErrInternal
	}

	out := hackathon.CalendarMonth{Year: year, Month: month, Hackathons: items}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, calendarCacheTTL)
	}
	return out, nil
}

func (u *Hackathons) NextUpcoming(ctx context.Context) (hackathon.Hackathon, error) {
	h, err := u.hackathons.NextUpcoming(ctx, u.now())
	if err != nil {
		if errors.Is(err, repository.ErrHackathonNotFound) {
			return hackathon.Hackathon{}, ErrNoUpcomingHackathon
		}
		return hackathon.Hackathon{}, ErrInternal
	}
	return h, nil
}
