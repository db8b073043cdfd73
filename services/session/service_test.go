package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	sessionRepo "sessionbooker/database/repository/session"
	"sessionbooker/models"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeRepo keeps sessions in a map.
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeRepo) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetManyByIDs(_ context.Context, ids []string) (map[string]*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*models.Session, len(ids))
	for _, id := range ids {
		if s, ok := r.sessions[id]; ok {
			cp := *s
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return sessionRepo.ErrNotFound
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return sessionRepo.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeRepo) CompareAndSetStatus(_ context.Context, id string, old, new models.SessionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Status != old {
		return false, nil
	}
	s.Status = new
	return true, nil
}

func (r *fakeRepo) ListAvailable(_ context.Context, q sessionRepo.ListQuery, afterStart time.Time) ([]models.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.Status != models.SessionAvailable || !s.StartTime.After(afterStart) {
			continue
		}
		if q.Category != "" && s.Category != q.Category {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListByCreator(_ context.Context, creatorID string, page, pageSize int) ([]models.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.CreatorID == creatorID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func newTestService() (*DefaultSessionService, *fakeRepo, time.Time) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	return &DefaultSessionService{Repo: repo, Clock: fixedClock{now}}, repo, now
}

func validInput(start time.Time) CreateInput {
	return CreateInput{
		Title:       "Intro to Goroutines",
		Description: "Channels, select and the scheduler.",
		Category:    models.CategoryTech,
		StartTime:   start.Format(time.RFC3339),
		Duration:    60,
		Price:       25,
	}
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an available session", func(t *testing.T) {
		svc, repo, now := newTestService()

		created, err := svc.CreateSession(ctx, "creator", validInput(now.Add(24*time.Hour)))
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if created.Status != models.SessionAvailable {
			t.Errorf("status = %q, want %q", created.Status, models.SessionAvailable)
		}
		if created.MaxParticipants != 1 {
			t.Errorf("maxParticipants = %d, want default 1", created.MaxParticipants)
		}
		if created.CreatorID != "creator" {
			t.Errorf("creatorId = %q", created.CreatorID)
		}
		if _, err := repo.GetByID(ctx, created.ID); err != nil {
			t.Errorf("created session not persisted: %v", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc, _, now := newTestService()
		future := now.Add(24 * time.Hour)

		mutations := map[string]func(*CreateInput){
			"past start":        func(in *CreateInput) { in.StartTime = now.Add(-time.Hour).Format(time.RFC3339) },
			"start exactly now": func(in *CreateInput) { in.StartTime = now.Format(time.RFC3339) },
			"bad timestamp":     func(in *CreateInput) { in.StartTime = "tomorrow at noon" },
			"empty title":       func(in *CreateInput) { in.Title = "" },
			"overlong title":    func(in *CreateInput) { in.Title = strings.Repeat("x", 101) },
			"empty description": func(in *CreateInput) { in.Description = "" },
			"unknown category":  func(in *CreateInput) { in.Category = "Snacks" },
			"duration too low":  func(in *CreateInput) { in.Duration = 14 },
			"duration too high": func(in *CreateInput) { in.Duration = 481 },
			"negative price":    func(in *CreateInput) { in.Price = -1 },
			"too many tags":     func(in *CreateInput) { in.Tags = make([]string, 11) },
			"too many seats":    func(in *CreateInput) { in.MaxParticipants = 51 },
			"overlong notes":    func(in *CreateInput) { in.Notes = strings.Repeat("x", 501) },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				in := validInput(future)
				mutate(&in)
				_, err := svc.CreateSession(ctx, "creator", in)
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("err = %v, want ErrInvalidInput", err)
				}
			})
		}
	})
}

func TestUpdateSession(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, svc *DefaultSessionService, now time.Time) *models.Session {
		t.Helper()
		s, err := svc.CreateSession(ctx, "creator", validInput(now.Add(24*time.Hour)))
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		return s
	}

	t.Run("creator edits an available session", func(t *testing.T) {
		svc, _, now := newTestService()
		s := create(t, svc, now)

		title := "Advanced Goroutines"
		updated, err := svc.UpdateSession(ctx, s.ID, "creator", UpdateInput{Title: &title})
		if err != nil {
			t.Fatalf("UpdateSession: %v", err)
		}
		if updated.Title != title {
			t.Errorf("title = %q, want %q", updated.Title, title)
		}
		if updated.Description != s.Description {
			t.Errorf("untouched field changed: %q", updated.Description)
		}
	})

	t.Run("rejects edits by anyone else", func(t *testing.T) {
		svc, _, now := newTestService()
		s := create(t, svc, now)

		title := "hijacked"
		_, err := svc.UpdateSession(ctx, s.ID, "mallory", UpdateInput{Title: &title})
		if !errors.Is(err, ErrNotCreator) {
			t.Errorf("err = %v, want ErrNotCreator", err)
		}
	})

	t.Run("rejects edits to a booked session", func(t *testing.T) {
		svc, repo, now := newTestService()
		s := create(t, svc, now)

		if ok, _ := repo.CompareAndSetStatus(ctx, s.ID, models.SessionAvailable, models.SessionBooked); !ok {
			t.Fatal("failed to mark session booked")
		}

		title := "too late"
		_, err := svc.UpdateSession(ctx, s.ID, "creator", UpdateInput{Title: &title})
		if !errors.Is(err, ErrSessionBooked) {
			t.Errorf("err = %v, want ErrSessionBooked", err)
		}
	})
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creator deletes an available session", func(t *testing.T) {
		svc, repo, now := newTestService()
		s, err := svc.CreateSession(ctx, "creator", validInput(now.Add(24*time.Hour)))
		if err != nil {
			t.Fatal(err)
		}

		if err := svc.DeleteSession(ctx, s.ID, "creator"); err != nil {
			t.Fatalf("DeleteSession: %v", err)
		}
		if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, sessionRepo.ErrNotFound) {
			t.Errorf("session still present after delete: %v", err)
		}
	})

	t.Run("rejects deleting a booked session", func(t *testing.T) {
		svc, repo, now := newTestService()
		s, err := svc.CreateSession(ctx, "creator", validInput(now.Add(24*time.Hour)))
		if err != nil {
			t.Fatal(err)
		}
		if ok, _ := repo.CompareAndSetStatus(ctx, s.ID, models.SessionAvailable, models.SessionBooked); !ok {
			t.Fatal("failed to mark session booked")
		}

		if err := svc.DeleteSession(ctx, s.ID, "creator"); !errors.Is(err, ErrSessionBooked) {
			t.Errorf("err = %v, want ErrSessionBooked", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		svc, _, _ := newTestService()
		if err := svc.DeleteSession(ctx, "nope", "creator"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	svc, repo, now := newTestService()

	seed := func(id string, status models.SessionStatus, start time.Time, category models.SessionCategory) {
		repo.Create(ctx, &models.Session{
			ID: id, Title: id, Description: id, Category: category,
			StartTime: start, Duration: 60, CreatorID: "creator", Status: status,
		})
	}
	seed("future-tech", models.SessionAvailable, now.Add(time.Hour), models.CategoryTech)
	seed("future-health", models.SessionAvailable, now.Add(2*time.Hour), models.CategoryHealth)
	seed("past", models.SessionAvailable, now.Add(-time.Hour), models.CategoryTech)
	seed("booked", models.SessionBooked, now.Add(time.Hour), models.CategoryTech)

	page, err := svc.ListSessions(ctx, sessionRepo.ListQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2 (only available future sessions)", page.Total)
	}

	page, err = svc.ListSessions(ctx, sessionRepo.ListQuery{Category: models.CategoryHealth, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Sessions[0].ID != "future-health" {
		t.Errorf("category filter returned %+v", page.Sessions)
	}
}
