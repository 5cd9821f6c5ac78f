package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
)

type articleRepository struct {
	s *Store
}

func (s *Store) Articles() wellness.ArticleRepository {
	return &articleRepository{s: s}
}

func (r *articleRepository) withAuthor(a wellness.Article) wellness.Article {
	if u, ok := r.s.data.users[a.AuthorID]; ok {
		a.AuthorName = strPtr(u.Name)
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a
}

func (r *articleRepository) Create(ctx context.Context, a wellness.Article) (wellness.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	a.ID = newID()
	a.Views = 0
	a.CreatedAt, a.UpdatedAt = now, now
	a.AuthorName = nil
	r.s.data.articles[a.ID] = a
	return r.withAuthor(a), nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (wellness.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.data.articles[id]
	if !ok {
		return wellness.Article{}, wellness.ErrArticleNotFound
	}
	return r.withAuthor(a), nil
}

func articleMatches(a wellness.Article, search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(a.Title), search) || strings.Contains(strings.ToLower(a.Content), search) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func (r *articleRepository) List(ctx context.Context, filter wellness.ArticleFilter) ([]wellness.Article, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]wellness.Article, 0)
	for _, a := range r.s.data.articles {
		if !a.IsPublished {
			continue
		}
		if filter.Category != "" && string(a.Category) != filter.Category {
			continue
		}
		if filter.Search != "" && !articleMatches(a, filter.Search) {
			continue
		}
		matched = append(matched, r.withAuthor(a))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return paginate(matched, filter.Pagination), int64(len(matched)), nil
}

func (r *articleRepository) Update(ctx context.Context, a wellness.Article) (wellness.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.articles[a.ID]
	if !ok {
		return wellness.Article{}, wellness.ErrArticleNotFound
	}
	a.AuthorID, a.Views, a.CreatedAt = existing.AuthorID, existing.Views, existing.CreatedAt
	a.UpdatedAt = r.s.now()
	a.AuthorName = nil
	r.s.data.articles[a.ID] = a
	return r.withAuthor(a), nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.articles[id]; !ok {
		return wellness.ErrArticleNotFound
	}
	delete(r.s.data.articles, id)
	return nil
}

func (r *articleRepository) IncrementViews(ctx context.Context, id string) (wellness.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.data.articles[id]
	if !ok || !a.IsPublished {
		return wellness.Article{}, wellness.ErrArticleNotFound
	}
	a.Views++
	r.s.data.articles[id] = a
	return r.withAuthor(a), nil
}

type eventRepository struct {
	s *Store
}

func (s *Store) Events() wellness.EventRepository {
	return &eventRepository{s: s}
}

// hydrate attaches organizer and registrations. Callers hold s.mu.
func (r *eventRepository) hydrate(e wellness.Event) wellness.Event {
	if u, ok := r.s.data.users[e.OrganizerID]; ok {
		e.OrganizerName = strPtr(u.Name)
	}
	regs := make([]wellness.Registration, 0)
	for k, reg := range r.s.data.registrations {
		if k.eventID != e.ID {
			continue
		}
		if u, ok := r.s.data.users[reg.UserID]; ok {
			reg.UserName, reg.UserEmail = strPtr(u.Name), strPtr(u.Email)
		}
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RegisteredAt.Before(regs[j].RegisteredAt) })
	e.Registrations = regs
	return e
}

func (r *eventRepository) Create(ctx context.Context, e wellness.Event) (wellness.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	e.ID = newID()
	e.CreatedAt, e.UpdatedAt = now, now
	e.Registrations, e.OrganizerName = nil, nil
	r.s.data.events[e.ID] = e
	return r.hydrate(e), nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (wellness.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.data.events[id]
	if !ok {
		return wellness.Event{}, wellness.ErrEventNotFound
	}
	return r.hydrate(e), nil
}

// GetByIDForUpdate relies on the transactor serialising transactions.
func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (wellness.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *eventRepository) sortedEvents(filter func(wellness.Event) bool) []wellness.Event {
	out := make([]wellness.Event, 0)
	for _, e := range r.s.data.events {
		if e.IsActive && filter(e) {
			out = append(out, r.hydrate(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *eventRepository) List(ctx context.Context, filter wellness.EventFilter) ([]wellness.Event, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := r.sortedEvents(func(e wellness.Event) bool {
		if filter.Category != "" && string(e.Category) != filter.Category {
			return false
		}
		return !filter.Upcoming || !e.Date.Before(filter.Now)
	})
	return paginate(matched, filter.Pagination), int64(len(matched)), nil
}

func (r *eventRepository) ListByParticipant(ctx context.Context, userID string) ([]wellness.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.sortedEvents(func(e wellness.Event) bool {
		reg, ok := r.s.data.registrations[registrationKey{e.ID, userID}]
		return ok && reg.Status == wellness.RegistrationRegistered
	}), nil
}

func (r *eventRepository) Update(ctx context.Context, e wellness.Event) (wellness.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.events[e.ID]
	if !ok {
		return wellness.Event{}, wellness.ErrEventNotFound
	}
	e.OrganizerID, e.CreatedAt = existing.OrganizerID, existing.CreatedAt
	e.UpdatedAt = r.s.now()
	e.Registrations, e.OrganizerName = nil, nil
	r.s.data.events[e.ID] = e
	return r.hydrate(e), nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.events[id]; !ok {
		return wellness.ErrEventNotFound
	}
	delete(r.s.data.events, id)
	for k := range r.s.data.registrations {
		if k.eventID == id {
			delete(r.s.data.registrations, k)
		}
	}
	return nil
}

func (r *eventRepository) SaveRegistration(ctx context.Context, reg wellness.Registration) (wellness.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.events[reg.EventID]; !ok {
		return wellness.Registration{}, wellness.ErrEventNotFound
	}
	key := registrationKey{reg.EventID, reg.UserID}
	if existing, ok := r.s.data.registrations[key]; ok {
		reg.ID = existing.ID
	} else {
		reg.ID = newID()
	}
	r.s.data.registrations[key] = reg
	return reg, nil
}

func paginate[T any](items []T, p wellness.Pagination) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if p.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
