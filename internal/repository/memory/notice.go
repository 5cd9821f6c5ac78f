package memory

import (
	"context"
	"sort"

	"github.com/leavehub/leave-backend-go/internal/domain/notice"
)

type noticeRepository struct {
	s *Store
}

func (s *Store) Notices() notice.NoticeRepository {
	return &noticeRepository{s: s}
}

func (r *noticeRepository) withPoster(n notice.Notice) notice.Notice {
	if u, ok := r.s.data.users[n.PostedBy]; ok {
		n.PosterName = strPtr(u.Name)
	}
	return n
}

func (r *noticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	n.ID = newID()
	n.IsActive = true
	n.PostedDate, n.CreatedAt, n.UpdatedAt = now, now, now
	n.PosterName = nil
	r.s.data.notices[n.ID] = n
	return n, nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id string) (notice.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.data.notices[id]
	if !ok {
		return notice.Notice{}, notice.ErrNoticeNotFound
	}
	return r.withPoster(n), nil
}

func (r *noticeRepository) ListActive(ctx context.Context) ([]notice.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]notice.Notice, 0)
	for _, n := range r.s.data.notices {
		if n.IsActive {
			out = append(out, r.withPoster(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedDate.After(out[j].PostedDate) })
	return out, nil
}

func (r *noticeRepository) Update(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.notices[n.ID]
	if !ok {
		return notice.Notice{}, notice.ErrNoticeNotFound
	}
	existing.Title, existing.Content, existing.IsActive = n.Title, n.Content, n.IsActive
	existing.UpdatedAt = r.s.now()
	r.s.data.notices[n.ID] = existing
	return r.withPoster(existing), nil
}

func (r *noticeRepository) Deactivate(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.data.notices[id]
	if !ok || !n.IsActive {
		return notice.ErrNoticeNotFound
	}
	n.IsActive = false
	n.UpdatedAt = r.s.now()
	r.s.data.notices[id] = n
	return nil
}
