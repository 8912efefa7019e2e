package mail

import (
	"testing"

	"go-contact-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smtpTransport(t *testing.T, tr Transport) *SMTPTransport {
	t.Helper()
	st, ok := tr.(*SMTPTransport)
	require.True(t, ok, "expected *SMTPTransport, got %T", tr)
	return st
}

func TestSelectTransportPriorityOrder(t *testing.T) {
	cfg := &config.Config{
		ResendAPIKey:   "re_key",
		SendGridAPIKey: "sg_key",
		GmailUser:      "team@gmail.com",
		GmailPass:      "app-pass",
		PostmarkAPIKey: "pm_token",
		SMTPHost:       "mail.example.com",
		SMTPPort:       "2525",
	}

	// Resend wins while its key is present.
	st := smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "smtp.resend.com", st.Host)
	assert.Equal(t, "resend", st.Username)
	assert.Equal(t, "re_key", st.Password)
	assert.Equal(t, "resend", SelectedProvider(cfg))

	cfg.ResendAPIKey = ""
	st = smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "smtp.sendgrid.net", st.Host)
	assert.Equal(t, "apikey", st.Username)
	assert.Equal(t, "sg_key", st.Password)

	cfg.SendGridAPIKey = ""
	st = smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "smtp.gmail.com", st.Host)
	assert.Equal(t, "team@gmail.com", st.Username)
	assert.Equal(t, "app-pass", st.Password)

	cfg.GmailUser = ""
	cfg.GmailPass = ""
	st = smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "smtp.postmarkapp.com", st.Host)
	// Postmark uses the token as both username and password.
	assert.Equal(t, "pm_token", st.Username)
	assert.Equal(t, "pm_token", st.Password)

	cfg.PostmarkAPIKey = ""
	st = smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "mail.example.com", st.Host)
	assert.Equal(t, "2525", st.Port)
	assert.Equal(t, "smtp", SelectedProvider(cfg))
}

func TestSelectTransportGmailNeedsBothCredentials(t *testing.T) {
	cfg := &config.Config{
		GmailUser: "team@gmail.com",
		SMTPHost:  "localhost",
		SMTPPort:  "587",
	}
	// Password missing: Gmail is skipped, fallback applies.
	assert.Equal(t, "smtp", SelectedProvider(cfg))
}

func TestSelectTransportNeverFailsWithoutConfig(t *testing.T) {
	// Defaults mirror the unconfigured case: selection succeeds and points at
	// localhost, which will fail at send time instead.
	cfg := &config.Config{SMTPHost: "localhost", SMTPPort: "587"}
	st := smtpTransport(t, SelectTransport(cfg))
	assert.Equal(t, "localhost", st.Host)
	assert.Equal(t, "587", st.Port)
	assert.Empty(t, st.Username)
}
