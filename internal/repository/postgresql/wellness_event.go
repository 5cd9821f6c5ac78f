package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const eventColumns = `e.id, e.title, e.description, e.category, e.date, e.start_time, e.end_time, e.location,
	e.max_participants, e.image_url, e.organizer_id, e.is_active, e.created_at, e.updated_at`

const registrationColumns = `r.id, r.event_id, r.user_id, r.status, r.registered_at`

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) wellness.EventRepository {
	return &eventRepositoryImpl{db: db}
}

func eventDest(e *wellness.Event) []interface{} {
	return []interface{}{
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Category,
		&e.Date,
		&e.StartTime,
		&e.EndTime,
		&e.Location,
		&e.MaxParticipants,
		&e.ImageURL,
		&e.OrganizerID,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	}
}

func scanEvent(row pgx.Row) (wellness.Event, error) {
	var e wellness.Event
	err := row.Scan(eventDest(&e)...)
	return e, err
}

// Create implements wellness.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, e wellness.Event) (wellness.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wellness_events AS e (id, title, description, category, date, start_time, end_time, location,
			max_participants, image_url, organizer_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + eventColumns

	created, err := scanEvent(q.QueryRow(ctx, query,
		newID(),
		e.Title,
		e.Description,
		e.Category,
		e.Date,
		e.StartTime,
		e.EndTime,
		e.Location,
		e.MaxParticipants,
		e.ImageURL,
		e.OrganizerID,
		e.IsActive,
	))
	if err != nil {
		return wellness.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	created.Registrations = []wellness.Registration{}
	return created, nil
}

// GetByID implements wellness.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string) (wellness.Event, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements wellness.EventRepository.
func (r *eventRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (wellness.Event, error) {
	return r.getByID(ctx, id, true)
}

func (r *eventRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (wellness.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `, u.name
		FROM wellness_events e
		LEFT JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF e`
	}

	var e wellness.Event
	if err := q.QueryRow(ctx, query, id).Scan(append(eventDest(&e), &e.OrganizerName)...); err != nil {
		if isNoRows(err) {
			return wellness.Event{}, wellness.ErrEventNotFound
		}
		return wellness.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	regs, err := r.loadRegistrations(ctx, []string{e.ID})
	if err != nil {
		return wellness.Event{}, err
	}
	e.Registrations = regs[e.ID]
	if e.Registrations == nil {
		e.Registrations = []wellness.Registration{}
	}
	return e, nil
}

// List implements wellness.EventRepository.
func (r *eventRepositoryImpl) List(ctx context.Context, filter wellness.EventFilter) ([]wellness.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"e.is_active = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("e.category = $%d", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Upcoming {
		whereClauses = append(whereClauses, fmt.Sprintf("e.date >= $%d", argIndex))
		args = append(args, filter.Now)
		argIndex++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM wellness_events e WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name
		FROM wellness_events e
		LEFT JOIN users u ON u.id = e.organizer_id
		WHERE %s
		ORDER BY e.date ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	events, err := r.collectEvents(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByParticipant implements wellness.EventRepository.
func (r *eventRepositoryImpl) ListByParticipant(ctx context.Context, userID string) ([]wellness.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+eventColumns+`, u.name
		FROM wellness_events e
		JOIN wellness_event_registrations reg ON reg.event_id = e.id
		LEFT JOIN users u ON u.id = e.organizer_id
		WHERE e.is_active = TRUE AND reg.user_id = $1 AND reg.status = 'Registered'
		ORDER BY e.date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by participant: %w", err)
	}
	return r.collectEvents(ctx, rows)
}

func (r *eventRepositoryImpl) collectEvents(ctx context.Context, rows pgx.Rows) ([]wellness.Event, error) {
	events := make([]wellness.Event, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var e wellness.Event
		if err := rows.Scan(append(eventDest(&e), &e.OrganizerName)...); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
		ids = append(ids, e.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	regs, err := r.loadRegistrations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Registrations = regs[events[i].ID]
		if events[i].Registrations == nil {
			events[i].Registrations = []wellness.Registration{}
		}
	}
	return events, nil
}

func (r *eventRepositoryImpl) loadRegistrations(ctx context.Context, eventIDs []string) (map[string][]wellness.Registration, error) {
	result := make(map[string][]wellness.Registration, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+registrationColumns+`, u.name, u.email
		FROM wellness_event_registrations r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.event_id = ANY($1::uuid[])
		ORDER BY r.registered_at ASC`, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reg wellness.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.UserName, &reg.UserEmail); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		result[reg.EventID] = append(result[reg.EventID], reg)
	}
	return result, rows.Err()
}

// Update implements wellness.EventRepository.
func (r *eventRepositoryImpl) Update(ctx context.Context, e wellness.Event) (wellness.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wellness_events AS e
		SET title = $1, description = $2, category = $3, date = $4, start_time = $5, end_time = $6,
			location = $7, max_participants = $8, image_url = $9, is_active = $10, updated_at = NOW()
		WHERE e.id = $11
		RETURNING ` + eventColumns

	updated, err := scanEvent(q.QueryRow(ctx, query,
		e.Title,
		e.Description,
		e.Category,
		e.Date,
		e.StartTime,
		e.EndTime,
		e.Location,
		e.MaxParticipants,
		e.ImageURL,
		e.IsActive,
		e.ID,
	))
	if err != nil {
		if isNoRows(err) {
			return wellness.Event{}, wellness.ErrEventNotFound
		}
		return wellness.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	updated.OrganizerName = e.OrganizerName
	updated.Registrations = e.Registrations
	return updated, nil
}

// Delete implements wellness.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM wellness_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wellness.ErrEventNotFound
	}
	return nil
}

// SaveRegistration implements wellness.EventRepository.
func (r *eventRepositoryImpl) SaveRegistration(ctx context.Context, reg wellness.Registration) (wellness.Registration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wellness_event_registrations AS r (id, event_id, user_id, status, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET status = EXCLUDED.status, registered_at = EXCLUDED.registered_at
		RETURNING ` + registrationColumns

	var saved wellness.Registration
	err := q.QueryRow(ctx, query, newID(), reg.EventID, reg.UserID, reg.Status, reg.RegisteredAt).Scan(
		&saved.ID,
		&saved.EventID,
		&saved.UserID,
		&saved.Status,
		&saved.RegisteredAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return wellness.Registration{}, wellness.ErrEventNotFound
		}
		return wellness.Registration{}, fmt.Errorf("failed to save registration: %w", err)
	}
	saved.UserName, saved.UserEmail = reg.UserName, reg.UserEmail
	return saved, nil
}
