// Package emailtest provides an in-memory EmailService for tests.
package emailtest

import (
	"sync"

	"github.com/leavehub/leave-backend-go/internal/pkg/email"
)

// Sent is one captured message.
type Sent struct {
	Template string
	To       string
	Data     interface{}
}

// Recorder captures every send instead of talking to SMTP. Set Err to make sends fail.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
	Err  error
}

var _ email.EmailService = (*Recorder)(nil)

func (r *Recorder) record(template, to string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, Sent{Template: template, To: to, Data: data})
	return nil
}

func (r *Recorder) SendLeaveRequest(data email.LeaveRequestData) error {
	return r.record("leave_request", "", data)
}

func (r *Recorder) SendLeaveStatusUpdate(to string, data email.LeaveStatusData) error {
	return r.record("leave_status", to, data)
}

func (r *Recorder) SendEventRegistration(to string, data email.EventRegistrationData) error {
	return r.record("event_registration", to, data)
}

// Sent returns a copy of the captured messages.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}
