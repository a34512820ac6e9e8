package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPNotifier_Notify(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := NewSMTPNotifier(SMTPConfig{
		Host: "mail.example.com",
		Port: 587,
		From: "alerts@example.com",
	})
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := n.Notify(context.Background(), "Daily Air Quality Update: London", "body text",
		[]string{"anna@example.com", "ben@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "alerts@example.com", gotFrom)
	assert.Equal(t, []string{"anna@example.com", "ben@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Daily Air Quality Update: London")
	assert.Contains(t, string(gotMsg), "body text")
}

func TestSMTPNotifier_DeliveryError(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.example.com", Port: 587})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := n.Notify(context.Background(), "s", "b", []string{"anna@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestSMTPNotifier_CancelledContext(t *testing.T) {
	called := false
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.example.com", Port: 587})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Notify(ctx, "s", "b", []string{"anna@example.com"})
	require.Error(t, err)
	assert.False(t, called)
}
