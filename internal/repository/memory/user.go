package memory

import (
	"context"
	"sort"

	"github.com/leavehub/leave-backend-go/internal/domain/user"
)

type userRepository struct {
	s *Store
}

func (s *Store) Users() user.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrEmailAlreadyExists
		}
	}
	now := r.s.now()
	newUser.ID = newID()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.s.data.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) sorted(filter func(user.User) bool) []user.User {
	out := make([]user.User, 0)
	for _, u := range r.s.data.users {
		if filter == nil || filter(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(nil), nil
}

func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := r.sorted(func(u user.User) bool { return u.Role == role })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *userRepository) ListRecent(ctx context.Context, limit int) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := r.sorted(nil)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *userRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	for _, other := range r.s.data.users {
		if other.ID != u.ID && other.Email == u.Email {
			return user.User{}, user.ErrEmailAlreadyExists
		}
	}
	existing.Name, existing.Email, existing.Role = u.Name, u.Email, u.Role
	existing.UpdatedAt = r.s.now()
	r.s.data.users[u.ID] = existing
	return existing, nil
}

func (r *userRepository) LinkGoogleAccount(ctx context.Context, id string, googleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.GoogleID = strPtr(googleID)
	u.UpdatedAt = r.s.now()
	r.s.data.users[id] = u
	return nil
}

// Delete cascades to everything the user owns, as the foreign keys do.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := &r.s.data
	if _, ok := d.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(d.users, id)

	for k := range d.balances {
		if k.employeeID == id {
			delete(d.balances, k)
		}
	}
	for k, v := range d.balanceRequests {
		if v.EmployeeID == id {
			delete(d.balanceRequests, k)
		}
	}
	for k, v := range d.leaves {
		if v.EmployeeID == id {
			delete(d.leaves, k)
		}
	}
	for k, v := range d.notices {
		if v.PostedBy == id {
			delete(d.notices, k)
		}
	}
	for k, v := range d.notifications {
		if v.UserID == id {
			delete(d.notifications, k)
		}
	}
	for k, v := range d.articles {
		if v.AuthorID == id {
			delete(d.articles, k)
		}
	}
	for k, v := range d.events {
		if v.OrganizerID == id {
			delete(d.events, k)
		}
	}
	for k := range d.registrations {
		if k.userID == id {
			delete(d.registrations, k)
		}
		if _, ok := d.events[k.eventID]; !ok {
			delete(d.registrations, k)
		}
	}
	return nil
}
