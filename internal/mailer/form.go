package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultStatusTTL is how long a submit status stays visible.
const DefaultStatusTTL = 5 * time.Second

// StatusKind distinguishes success from failure banners.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the transient banner under the form.
type Status struct {
	Kind StatusKind
	Text string
}

// Form is the contact form state. Fields stay editable whatever the relay
// answers; they are cleared only after a successful send.
type Form struct {
	mu         sync.Mutex
	relay      Relay
	clock      clockz.Clock
	ttl        time.Duration
	fields     Message
	submitting bool
	status     Status
	expires    time.Time
}

type FormOption func(*Form)

func WithClock(clock clockz.Clock) FormOption {
	return func(f *Form) { f.clock = clock }
}

func WithStatusTTL(d time.Duration) FormOption {
	return func(f *Form) { f.ttl = d }
}

func NewForm(relay Relay, opts ...FormOption) *Form {
	f := &Form{relay: relay, clock: clockz.RealClock, ttl: DefaultStatusTTL}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill replaces the field values.
func (f *Form) Fill(m Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = m
}

// Fields returns the current values.
func (f *Form) Fields() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Submitting reports whether a send is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Status returns the banner, or the zero Status once it expired.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status.Kind != StatusNone && !f.clock.Now().Before(f.expires) {
		f.status = Status{}
	}
	return f.status
}

// ClearAfter is the remaining lifetime of the banner.
func (f *Form) ClearAfter() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status.Kind == StatusNone {
		return 0
	}
	if d := f.expires.Sub(f.clock.Now()); d > 0 {
		return d
	}
	return 0
}

// Submit sends the fields through the relay. A second Submit while one is in
// flight is ignored.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Outcome{Message: "Message is already being sent"}
	}
	f.submitting = true
	fields := f.fields
	f.mu.Unlock()

	out := f.relay.Deliver(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	kind := StatusError
	if out.OK {
		kind = StatusSuccess
		f.fields = Message{}
	}
	f.status = Status{Kind: kind, Text: out.Message}
	f.expires = f.clock.Now().Add(f.ttl)
	return out
}
