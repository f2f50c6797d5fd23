package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackmatch/internal/domain/hackathon"

	"github.com/google/uuid"
)

type memoryCache struct {
	stored map[string]any
	hits   int
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.stored[key]
	if !ok {
		return false, nil
	}
	c.hits++
	if cal, ok := v.(hackathon.CalendarMonth); ok {
		*out.(*hackathon.CalendarMonth) = cal
	}
	return true, nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if c.stored == nil {
		c.stored = map[string]any{}
	}
	c.stored[key] = value
	return nil
}

func TestHackathons_CalendarBucketsMonth(t *testing.T) {
	repo := &mockHackathonRepo{byID: map[uuid.UUID]hackathon.Hackathon{}}
	inMonth := hackathon.Hackathon{ID: uuid.New(), Name: "spring jam", StartDate: time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)}
	outOfMonth := hackathon.Hackathon{ID: uuid.New(), Name: "summer jam", StartDate: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)}
	repo.byID[inMonth.ID] = inMonth
	repo.byID[outOfMonth.ID] = outOfMonth

	uc := NewHackathonUsecase(repo, nil)
	cal, err := uc.Calendar(context.Background(), 2026, time.April)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cal.Year != 2026 || cal.Month != time.April {
		t.Fatalf("unexpected bucket: %d-%s", cal.Year, cal.Month)
	}
	if len(cal.Hackathons) != 1 || cal.Hackathons[0].ID != inMonth.ID {
		t.Fatalf("expected only the April hackathon, got %+v", cal.Hackathons)
	}
}

func TestHackathons_CalendarUsesCache(t *testing.T) {
	repo := &mockHackathonRepo{byID: map[uuid.UUID]hackathon.Hackathon{}}
	cache := &memoryCache{}

	uc := NewHackathonUsecase(repo, cache)
	if _, err := uc.Calendar(context.Background(), 2026, time.April); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.stored) != 1 {
		t.Fatalf("first read must populate the cache")
	}

	h := hackathon.Hackathon{ID: uuid.New(), StartDate: time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)}
	repo.byID[h.ID] = h

	cal, err := uc.Calendar(context.Background(), 2026, time.April)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.hits != 1 || len(cal.Hackathons) != 0 {
		t.Fatalf("second read must come from cache")
	}
}

func TestHackathons_NextUpcoming(t *testing.T) {
	repo := &mockHackathonRepo{byID: map[uuid.UUID]hackathon.Hackathon{}}
	uc := NewHackathonUsecase(repo, nil)
	uc.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	if _, err := uc.NextUpcoming(context.Background()); !errors.Is(err, ErrNoUpcomingHackathon) {
		t.Fatalf("expected ErrNoUpcomingHackathon, got %v", err)
	}

	past := hackathon.Hackathon{ID: uuid.New(), StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	near := hackathon.Hackathon{ID: uuid.New(), StartDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)}
	far := hackathon.Hackathon{ID: uuid.New(), StartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	repo.byID[past.ID] = past
	repo.byID[near.ID] = near
	repo.byID[far.ID] = far

	h, err := uc.NextUpcoming(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if h.ID != near.ID {
		t.Fatalf("expected the nearest upcoming hackathon, got %+v", h)
	}
}
