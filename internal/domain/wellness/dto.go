package wellness

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/leavehub/leave-backend-go/internal/pkg/validator"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Tags accepts either a JSON array or a comma separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = cleanTags(strings.Split(raw, ","))
	return nil
}

func cleanTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Pagination is shared by article and event listings.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize applies defaults and bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages rounds up; zero items still yields zero pages.
func (p Pagination) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

type ArticleFilter struct {
	Category string
	Search   string
	Pagination
}

type EventFilter struct {
	Category string
	Upcoming bool
	Now      time.Time
	Pagination
}

// Articles

type CreateArticleRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Excerpt  string  `json:"excerpt"`
	Category string  `json:"category"`
	Tags     Tags    `json:"tags"`
	ImageURL *string `json:"imageUrl,omitempty"`
	ReadTime *int    `json:"readTime,omitempty"`
}

func (r *CreateArticleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	}
	if validator.IsEmpty(r.Content) {
		errs.Add("content", "content is required")
	}
	if validator.IsEmpty(r.Excerpt) {
		errs.Add("excerpt", "excerpt is required")
	} else if validator.ExceedsLength(r.Excerpt, 200) {
		errs.Add("excerpt", "excerpt must not exceed 200 characters")
	}
	if !ArticleCategory(r.Category).IsValid() {
		errs.Add("category", "category is not a valid article category")
	}
	if r.ReadTime != nil && *r.ReadTime <= 0 {
		errs.Add("readTime", "readTime must be greater than 0")
	}

	return errs.Err()
}

type UpdateArticleRequest struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Excerpt     *string `json:"excerpt,omitempty"`
	Category    *string `json:"category,omitempty"`
	Tags        *Tags   `json:"tags,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ReadTime    *int    `json:"readTime,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

func (r *UpdateArticleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title must not be empty")
	}
	if r.Excerpt != nil && validator.ExceedsLength(*r.Excerpt, 200) {
		errs.Add("excerpt", "excerpt must not exceed 200 characters")
	}
	if r.Category != nil && !ArticleCategory(*r.Category).IsValid() {
		errs.Add("category", "category is not a valid article category")
	}
	if r.ReadTime != nil && *r.ReadTime <= 0 {
		errs.Add("readTime", "readTime must be greater than 0")
	}

	return errs.Err()
}

// Apply copies the provided fields onto a.
func (r *UpdateArticleRequest) Apply(a *Article) {
	if r.Title != nil {
		a.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil && !validator.IsEmpty(*r.Content) {
		a.Content = *r.Content
	}
	if r.Excerpt != nil && !validator.IsEmpty(*r.Excerpt) {
		a.Excerpt = *r.Excerpt
	}
	if r.Category != nil {
		a.Category = ArticleCategory(*r.Category)
	}
	if r.Tags != nil {
		a.Tags = []string(*r.Tags)
	}
	if r.ImageURL != nil {
		a.ImageURL = r.ImageURL
	}
	if r.ReadTime != nil {
		a.ReadTime = *r.ReadTime
	}
	if r.IsPublished != nil {
		a.IsPublished = *r.IsPublished
	}
}

type ArticleResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Excerpt     string          `json:"excerpt"`
	Category    ArticleCategory `json:"category"`
	Tags        []string        `json:"tags"`
	ImageURL    *string         `json:"imageUrl"`
	AuthorID    string          `json:"authorId"`
	AuthorName  *string         `json:"authorName,omitempty"`
	ReadTime    int             `json:"readTime"`
	Views       int             `json:"views"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func ToArticleResponse(a Article) ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		Category:    a.Category,
		Tags:        tags,
		ImageURL:    a.ImageURL,
		AuthorID:    a.AuthorID,
		AuthorName:  a.AuthorName,
		ReadTime:    a.ReadTime,
		Views:       a.Views,
		IsPublished: a.IsPublished,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type ArticleListResponse struct {
	Articles    []ArticleResponse `json:"articles"`
	Total       int64             `json:"total"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

// Events

type CreateEventRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Location        string  `json:"location"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`

	date time.Time
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}
	if !EventCategory(r.Category).IsValid() {
		errs.Add("category", "category is not a valid event category")
	}
	date, ok := parseEventDate(r.Date)
	if !ok {
		errs.Add("date", "date must be YYYY-MM-DD or an RFC3339 timestamp")
	}
	if !validator.IsValidClock(r.StartTime) {
		errs.Add("startTime", "startTime must be in HH:MM format")
	}
	if !validator.IsValidClock(r.EndTime) {
		errs.Add("endTime", "endTime must be in HH:MM format")
	}
	if validator.IsEmpty(r.Location) {
		errs.Add("location", "location is required")
	}
	if r.MaxParticipants != nil && *r.MaxParticipants <= 0 {
		errs.Add("maxParticipants", "maxParticipants must be greater than 0")
	}

	if err := errs.Err(); err != nil {
		return err
	}
	r.date = date
	return nil
}

// ParsedDate is only meaningful after Validate succeeds.
func (r *CreateEventRequest) ParsedDate() time.Time {
	return r.date
}

type UpdateEventRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	Location        *string `json:"location,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`

	date *time.Time
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title must not be empty")
	}
	if r.Category != nil && !EventCategory(*r.Category).IsValid() {
		errs.Add("category", "category is not a valid event category")
	}
	if r.Date != nil {
		date, ok := parseEventDate(*r.Date)
		if !ok {
			errs.Add("date", "date must be YYYY-MM-DD or an RFC3339 timestamp")
		} else {
			r.date = &date
		}
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs.Add("startTime", "startTime must be in HH:MM format")
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs.Add("endTime", "endTime must be in HH:MM format")
	}
	if r.MaxParticipants != nil && *r.MaxParticipants <= 0 {
		errs.Add("maxParticipants", "maxParticipants must be greater than 0")
	}

	return errs.Err()
}

// Apply copies the provided fields onto e. Call after Validate.
func (r *UpdateEventRequest) Apply(e *Event) {
	if r.Title != nil {
		e.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil && !validator.IsEmpty(*r.Description) {
		e.Description = *r.Description
	}
	if r.Category != nil {
		e.Category = EventCategory(*r.Category)
	}
	if r.date != nil {
		e.Date = *r.date
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
	if r.Location != nil && !validator.IsEmpty(*r.Location) {
		e.Location = *r.Location
	}
	if r.MaxParticipants != nil {
		e.MaxParticipants = r.MaxParticipants
	}
	if r.ImageURL != nil {
		e.ImageURL = r.ImageURL
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
}

func parseEventDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(s); ok {
		return t.UTC(), true
	}
	return validator.IsValidDate(s)
}

type RegistrationResponse struct {
	UserID       string             `json:"userId"`
	UserName     *string            `json:"userName,omitempty"`
	UserEmail    *string            `json:"userEmail,omitempty"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`
}

type EventResponse struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	Category            EventCategory          `json:"category"`
	Date                time.Time              `json:"date"`
	StartTime           string                 `json:"startTime"`
	EndTime             string                 `json:"endTime"`
	Location            string                 `json:"location"`
	MaxParticipants     *int                   `json:"maxParticipants"`
	CurrentParticipants int                    `json:"currentParticipants"`
	ImageURL            *string                `json:"imageUrl"`
	OrganizerID         string                 `json:"organizerId"`
	OrganizerName       *string                `json:"organizerName,omitempty"`
	IsActive            bool                   `json:"isActive"`
	Registrations       []RegistrationResponse `json:"registrations"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func ToEventResponse(e Event) EventResponse {
	regs := make([]RegistrationResponse, 0, len(e.Registrations))
	for _, r := range e.Registrations {
		regs = append(regs, RegistrationResponse{
			UserID:       r.UserID,
			UserName:     r.UserName,
			UserEmail:    r.UserEmail,
			Status:       r.Status,
			RegisteredAt: r.RegisteredAt,
		})
	}
	return EventResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Category:            e.Category,
		Date:                e.Date,
		StartTime:           e.StartTime,
		EndTime:             e.EndTime,
		Location:            e.Location,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants(),
		ImageURL:            e.ImageURL,
		OrganizerID:         e.OrganizerID,
		OrganizerName:       e.OrganizerName,
		IsActive:            e.IsActive,
		Registrations:       regs,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func ToEventResponses(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventResponse(e))
	}
	return out
}

type EventListResponse struct {
	Events      []EventResponse `json:"events"`
	Total       int64           `json:"total"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
}
