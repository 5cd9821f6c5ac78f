package wellness

import "errors"

var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrEventInPast       = errors.New("cannot register for past events")
	ErrAlreadyRegistered = errors.New("you are already registered for this event")
	ErrEventFull         = errors.New("event is full")
	ErrNotRegistered     = errors.New("you are not registered for this event")
	ErrAlreadyAttended   = errors.New("you have already attended this event")
)
