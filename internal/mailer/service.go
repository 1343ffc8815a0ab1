package mailer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// Delivery statuses stored in the message log.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Record is one logged submission.
type Record struct {
	ID        string
	Message   Message
	Status    string
	Error     string
	CreatedAt time.Time
}

// MessageLog persists submissions and their delivery status.
type MessageLog interface {
	RecordMessage(ctx context.Context, r Record) error
	MarkMessage(ctx context.Context, id, status, errMsg string) error
}

// Outcome is what page code needs from a relay call: did it work and what to
// tell the visitor.
type Outcome struct {
	OK      bool
	Message string
}

// Relay delivers a contact message and reports the outcome. It never returns
// an error; failures are folded into the Outcome.
type Relay interface {
	Deliver(ctx context.Context, m Message) Outcome
}

// Service is the in-process relay: validation, logging and SMTP delivery.
type Service struct {
	sender Sender
	log    MessageLog
	logger *slog.Logger
}

func NewService(sender Sender, log MessageLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sender: sender, log: log, logger: logger}
}

// Send validates, logs and delivers m. It returns the message id.
func (s *Service) Send(ctx context.Context, m Message) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	capitan.Emit(ctx, MessageReceived, KeyMessageID.Field(id))
	if s.log != nil {
		rec := Record{ID: id, Message: m, Status: StatusPending, CreatedAt: time.Now().UTC()}
		if err := s.log.RecordMessage(ctx, rec); err != nil {
			s.logger.Warn("record contact message", "id", id, "error", err)
		}
	}

	err := s.sender.Send(ctx, m)
	status, errMsg := StatusSent, ""
	if err != nil {
		status, errMsg = StatusFailed, err.Error()
		s.logger.Error("email send failed", "id", id, "error", err)
		capitan.Emit(ctx, MessageFailed, KeyMessageID.Field(id), KeyError.Field(errMsg))
	} else {
		s.logger.Info("email sent", "id", id, "name", m.Name, "email", m.Email)
		capitan.Emit(ctx, MessageSent, KeyMessageID.Field(id))
	}
	if s.log != nil {
		if markErr := s.log.MarkMessage(ctx, id, status, errMsg); markErr != nil {
			s.logger.Warn("mark contact message", "id", id, "error", markErr)
		}
	}
	return id, err
}

func (s *Service) Deliver(ctx context.Context, m Message) Outcome {
	_, err := s.Send(ctx, m)
	switch {
	case err == nil:
		return Outcome{OK: true, Message: MsgSent}
	case errors.Is(err, ErrMissingFields):
		return Outcome{Message: MsgFieldsRequired}
	default:
		return Outcome{Message: MsgSendFailed}
	}
}

var _ Relay = (*Service)(nil)
