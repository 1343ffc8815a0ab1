package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m)
	return nil
}

type fakeLog struct {
	mu      sync.Mutex
	records map[string]Record
}

func newFakeLog() *fakeLog { return &fakeLog{records: map[string]Record{}} }

func (l *fakeLog) RecordMessage(_ context.Context, r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[r.ID] = r
	return nil
}

func (l *fakeLog) MarkMessage(_ context.Context, id, status, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.records[id]
	r.Status, r.Error = status, errMsg
	l.records[id] = r
	return nil
}

var valid = Message{Name: "Ada", Email: "ada@example.com", Message: "Hello\nthere"}

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, valid.Validate())

	for _, m := range []Message{
		{Email: "a@b.c", Message: "hi"},
		{Name: "Ada", Message: "hi"},
		{Name: "Ada", Email: "a@b.c", Message: "   "},
	} {
		assert.ErrorIs(t, m.Validate(), ErrMissingFields)
	}
}

func TestMessageHTMLBody(t *testing.T) {
	m := Message{Name: "<b>Ada</b>", Email: "ada@example.com", Message: "line one\nline <two>"}

	body, err := m.HTMLBody()
	require.NoError(t, err)

	assert.Contains(t, body, "line one<br>line &lt;two&gt;")
	assert.Contains(t, body, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.Contains(t, body, `href="mailto:ada@example.com"`)
	assert.Equal(t, "Portfolio Contact: <b>Ada</b>", m.Subject())
}

func TestSMTPSenderSend(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "pw"})
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, s.Send(context.Background(), valid))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	raw := string(gotMsg)
	assert.Contains(t, raw, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, raw, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, raw, `From: "Portfolio Contact" <me@example.com>`)
}

func TestSMTPSenderStripsHeaderInjection(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "h", Port: "25", User: "u", Pass: "p", To: "inbox@example.com"})
	m := valid
	m.Email = "x@example.com\r\nBcc: victim@example.com"

	raw, err := s.Compose(m)
	require.NoError(t, err)

	headers := strings.SplitN(string(raw), "\r\n\r\n", 2)[0]
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestSMTPSenderNotConfigured(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "h", Port: "25"})

	assert.ErrorIs(t, s.Send(context.Background(), valid), ErrNotConfigured)
	assert.ErrorIs(t, s.Verify(context.Background()), ErrNotConfigured)
}

func TestServiceLogsDeliveryStatus(t *testing.T) {
	log := newFakeLog()
	sender := &fakeSender{}
	svc := NewService(sender, log, nil)

	id, err := svc.Send(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, log.records[id].Status)
	assert.Len(t, sender.sent, 1)

	sender.err = errors.New("535 auth failed")
	id, err = svc.Send(context.Background(), valid)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, log.records[id].Status)
	assert.Equal(t, "535 auth failed", log.records[id].Error)
}

func TestServiceDeliver(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, nil, nil)

	assert.Equal(t, Outcome{OK: true, Message: MsgSent}, svc.Deliver(context.Background(), valid))
	assert.Equal(t, Outcome{Message: MsgFieldsRequired}, svc.Deliver(context.Background(), Message{Name: "Ada"}))

	sender.err = errors.New("down")
	assert.Equal(t, Outcome{Message: MsgSendFailed}, svc.Deliver(context.Background(), valid))
}
