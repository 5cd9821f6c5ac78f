package wellness

import "time"

type ArticleCategory string

const (
	CategoryMentalHealth     ArticleCategory = "Mental Health"
	CategoryPhysicalFitness  ArticleCategory = "Physical Fitness"
	CategoryNutrition        ArticleCategory = "Nutrition"
	CategoryWorkLifeBalance  ArticleCategory = "Work-Life Balance"
	CategoryStressManagement ArticleCategory = "Stress Management"
	CategoryGeneralWellness  ArticleCategory = "General Wellness"
)

func (c ArticleCategory) IsValid() bool {
	switch c {
	case CategoryMentalHealth, CategoryPhysicalFitness, CategoryNutrition,
		CategoryWorkLifeBalance, CategoryStressManagement, CategoryGeneralWellness:
		return true
	}
	return false
}

type EventCategory string

const (
	EventWorkshop          EventCategory = "Workshop"
	EventFitness           EventCategory = "Fitness"
	EventMentalHealth      EventCategory = "Mental Health"
	EventTeamBuilding      EventCategory = "Team Building"
	EventNutrition         EventCategory = "Nutrition"
	EventWellnessChallenge EventCategory = "Wellness Challenge"
)

func (c EventCategory) IsValid() bool {
	switch c {
	case EventWorkshop, EventFitness, EventMentalHealth,
		EventTeamBuilding, EventNutrition, EventWellnessChallenge:
		return true
	}
	return false
}

type Article struct {
	ID          string
	Title       string
	Content     string
	Excerpt     string
	Category    ArticleCategory
	Tags        []string
	ImageURL    *string
	AuthorID    string
	ReadTime    int
	Views       int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	AuthorName *string
}

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "Registered"
	RegistrationCancelled  RegistrationStatus = "Cancelled"
	RegistrationAttended   RegistrationStatus = "Attended"
)

type Registration struct {
	ID           string
	EventID      string
	UserID       string
	Status       RegistrationStatus
	RegisteredAt time.Time

	// Join
	UserName  *string
	UserEmail *string
}

type Event struct {
	ID              string
	Title           string
	Description     string
	Category        EventCategory
	Date            time.Time
	StartTime       string
	EndTime         string
	Location        string
	MaxParticipants *int
	ImageURL        *string
	OrganizerID     string
	IsActive        bool
	Registrations   []Registration
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	OrganizerName *string
}

// CurrentParticipants counts registrations that are still active.
func (e *Event) CurrentParticipants() int {
	n := 0
	for _, r := range e.Registrations {
		if r.Status == RegistrationRegistered {
			n++
		}
	}
	return n
}

// RegistrationFor returns the user's registration regardless of status.
func (e *Event) RegistrationFor(userID string) (Registration, bool) {
	for _, r := range e.Registrations {
		if r.UserID == userID {
			return r, true
		}
	}
	return Registration{}, false
}

// IsRegistered reports whether userID holds an active registration.
func (e *Event) IsRegistered(userID string) bool {
	r, ok := e.RegistrationFor(userID)
	return ok && r.Status == RegistrationRegistered
}

// IsFull is false for events without a participant cap.
func (e *Event) IsFull() bool {
	return e.MaxParticipants != nil && e.CurrentParticipants() >= *e.MaxParticipants
}
