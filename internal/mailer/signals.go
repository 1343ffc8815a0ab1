package mailer

import "github.com/zoobzio/capitan"

// Relay lifecycle signals.
var (
	MessageReceived = capitan.NewSignal("mailer.message.received", "Contact message received")
	MessageSent     = capitan.NewSignal("mailer.message.sent", "Contact message delivered")
	MessageFailed   = capitan.NewSignal("mailer.message.failed", "Contact message delivery failed")
	SenderVerified  = capitan.NewSignal("mailer.sender.verified", "SMTP sender verified")
)

// Field keys for relay events.
var (
	KeyMessageID = capitan.NewStringKey("message_id")
	KeyError     = capitan.NewStringKey("error")
)
