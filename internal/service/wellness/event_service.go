package wellness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/email"
	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

type EventServiceImpl struct {
	tx                  database.Transactor
	eventRepo           wellness.EventRepository
	userRepo            user.UserRepository
	notificationService notification.NotificationService
	emailService        email.EmailService
	now                 func() time.Time
}

func NewEventService(
	tx database.Transactor,
	eventRepo wellness.EventRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	emailService email.EmailService,
) wellness.EventService {
	return &EventServiceImpl{
		tx:                  tx,
		eventRepo:           eventRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailService:        emailService,
		now:                 time.Now,
	}
}

// List implements wellness.EventService.
func (s *EventServiceImpl) List(ctx context.Context, filter wellness.EventFilter) (wellness.EventListResponse, error) {
	filter.Pagination = filter.Pagination.Normalize()
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}

	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return wellness.EventListResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	return wellness.EventListResponse{
		Events:      wellness.ToEventResponses(events),
		Total:       total,
		CurrentPage: filter.Page,
		TotalPages:  filter.TotalPages(total),
	}, nil
}

// activeEvent hides inactive events behind ErrEventNotFound.
func activeEvent(e wellness.Event, err error) (wellness.Event, error) {
	if err != nil {
		return wellness.Event{}, err
	}
	if !e.IsActive {
		return wellness.Event{}, wellness.ErrEventNotFound
	}
	return e, nil
}

// Get implements wellness.EventService.
func (s *EventServiceImpl) Get(ctx context.Context, id string) (wellness.EventResponse, error) {
	e, err := activeEvent(s.eventRepo.GetByID(ctx, id))
	if err != nil {
		return wellness.EventResponse{}, err
	}
	return wellness.ToEventResponse(e), nil
}

// Create implements wellness.EventService.
func (s *EventServiceImpl) Create(ctx context.Context, organizerID string, req wellness.CreateEventRequest) (wellness.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return wellness.EventResponse{}, err
	}

	created, err := s.eventRepo.Create(ctx, wellness.Event{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        wellness.EventCategory(req.Category),
		Date:            req.ParsedDate(),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        strings.TrimSpace(req.Location),
		MaxParticipants: req.MaxParticipants,
		ImageURL:        req.ImageURL,
		OrganizerID:     organizerID,
		IsActive:        true,
	})
	if err != nil {
		return wellness.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}
	return wellness.ToEventResponse(created), nil
}

// Update implements wellness.EventService.
func (s *EventServiceImpl) Update(ctx context.Context, id string, req wellness.UpdateEventRequest) (wellness.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return wellness.EventResponse{}, err
	}

	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return wellness.EventResponse{}, err
	}

	req.Apply(&existing)

	updated, err := s.eventRepo.Update(ctx, existing)
	if err != nil {
		return wellness.EventResponse{}, err
	}
	return wellness.ToEventResponse(updated), nil
}

// Delete implements wellness.EventService.
func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}

// Register implements wellness.EventService. The event row stays locked
// from the capacity check until the registration is written.
func (s *EventServiceImpl) Register(ctx context.Context, userID string, eventID string) (wellness.EventResponse, error) {
	var registered wellness.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := activeEvent(s.eventRepo.GetByIDForUpdate(ctx, eventID))
		if err != nil {
			return err
		}

		now := s.now()
		if validator.TruncateDay(e.Date).Before(validator.TruncateDay(now)) {
			return wellness.ErrEventInPast
		}
		if reg, ok := e.RegistrationFor(userID); ok {
			switch reg.Status {
			case wellness.RegistrationRegistered:
				return wellness.ErrAlreadyRegistered
			case wellness.RegistrationAttended:
				return wellness.ErrAlreadyAttended
			}
		}
		if e.IsFull() {
			return wellness.ErrEventFull
		}

		if _, err := s.eventRepo.SaveRegistration(ctx, wellness.Registration{
			EventID:      e.ID,
			UserID:       userID,
			Status:       wellness.RegistrationRegistered,
			RegisteredAt: now,
		}); err != nil {
			return fmt.Errorf("failed to save registration: %w", err)
		}

		registered, err = s.eventRepo.GetByID(ctx, e.ID)
		return err
	})
	if err != nil {
		return wellness.EventResponse{}, err
	}

	s.confirmRegistration(ctx, userID, registered)

	return wellness.ToEventResponse(registered), nil
}

func (s *EventServiceImpl) confirmRegistration(ctx context.Context, userID string, e wellness.Event) {
	eventDate := e.Date.Format("Monday, January 2, 2006")

	if reg, ok := e.RegistrationFor(userID); ok && reg.UserEmail != nil {
		name := ""
		if reg.UserName != nil {
			name = *reg.UserName
		}
		err := s.emailService.SendEventRegistration(*reg.UserEmail, email.EventRegistrationData{
			UserName:   name,
			EventTitle: e.Title,
			EventDate:  eventDate,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Location:   e.Location,
		})
		if err != nil {
			slog.Error("Failed to send event registration email", "event_id", e.ID, "user_id", userID, "error", err)
		}
	}

	_, err := s.notificationService.Notify(ctx, notification.CreateNotificationRequest{
		UserID:  userID,
		Title:   "Event Registration Confirmed",
		Message: fmt.Sprintf("You are registered for %s on %s at %s.", e.Title, eventDate, e.Location),
		Type:    notification.TypeSuccess,
		Metadata: map[string]interface{}{
			"eventId": e.ID,
		},
	})
	if err != nil {
		slog.Error("Failed to notify event registration", "event_id", e.ID, "user_id", userID, "error", err)
	}
}

// Unregister implements wellness.EventService. The registration is kept as Cancelled.
func (s *EventServiceImpl) Unregister(ctx context.Context, userID string, eventID string) (wellness.EventResponse, error) {
	var updated wellness.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := activeEvent(s.eventRepo.GetByIDForUpdate(ctx, eventID))
		if err != nil {
			return err
		}

		reg, ok := e.RegistrationFor(userID)
		if !ok || reg.Status != wellness.RegistrationRegistered {
			return wellness.ErrNotRegistered
		}

		reg.Status = wellness.RegistrationCancelled
		if _, err := s.eventRepo.SaveRegistration(ctx, reg); err != nil {
			return fmt.Errorf("failed to cancel registration: %w", err)
		}

		updated, err = s.eventRepo.GetByID(ctx, e.ID)
		return err
	})
	if err != nil {
		return wellness.EventResponse{}, err
	}
	return wellness.ToEventResponse(updated), nil
}

// ListMine implements wellness.EventService.
func (s *EventServiceImpl) ListMine(ctx context.Context, userID string) ([]wellness.EventResponse, error) {
	events, err := s.eventRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered events: %w", err)
	}
	return wellness.ToEventResponses(events), nil
}
