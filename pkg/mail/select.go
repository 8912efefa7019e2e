package mail

import (
	"go-contact-backend/config"
)

// providerOption pairs a configuration predicate with a transport
// constructor. The chain is evaluated in order and the first match wins;
// provider blocks are never combined.
type providerOption struct {
	name  string
	match func(cfg *config.Config) bool
	build func(cfg *config.Config) Transport
}

var providers = []providerOption{
	{
		name:  "resend",
		match: func(cfg *config.Config) bool { return cfg.ResendAPIKey != "" },
		build: func(cfg *config.Config) Transport {
			return &SMTPTransport{Host: "smtp.resend.com", Port: "587", Username: "resend", Password: cfg.ResendAPIKey}
		},
	},
	{
		name:  "sendgrid",
		match: func(cfg *config.Config) bool { return cfg.SendGridAPIKey != "" },
		build: func(cfg *config.Config) Transport {
			return &SMTPTransport{Host: "smtp.sendgrid.net", Port: "587", Username: "apikey", Password: cfg.SendGridAPIKey}
		},
	},
	{
		name:  "gmail",
		match: func(cfg *config.Config) bool { return cfg.GmailUser != "" && cfg.GmailPass != "" },
		build: func(cfg *config.Config) Transport {
			return &SMTPTransport{Host: "smtp.gmail.com", Port: "587", Username: cfg.GmailUser, Password: cfg.GmailPass}
		},
	},
	{
		name:  "postmark",
		match: func(cfg *config.Config) bool { return cfg.PostmarkAPIKey != "" },
		build: func(cfg *config.Config) Transport {
			// Postmark uses the server token as both username and password.
			return &SMTPTransport{Host: "smtp.postmarkapp.com", Port: "587", Username: cfg.PostmarkAPIKey, Password: cfg.PostmarkAPIKey}
		},
	},
	{
		// Generic SMTP fallback. The predicate always matches: with nothing
		// configured this points at localhost:587 and fails at send time,
		// never at selection time.
		name:  "smtp",
		match: func(cfg *config.Config) bool { return true },
		build: func(cfg *config.Config) Transport {
			return &SMTPTransport{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUser,
				Password: cfg.SMTPPass,
				Implicit: cfg.SMTPSecure,
			}
		},
	},
}

// SelectTransport picks the outbound transport for the given configuration.
// Selection is pure over the snapshot and never fails.
func SelectTransport(cfg *config.Config) Transport {
	for _, p := range providers {
		if p.match(cfg) {
			return p.build(cfg)
		}
	}
	// Unreachable: the fallback predicate always matches.
	return providers[len(providers)-1].build(cfg)
}

// SelectedProvider reports which provider SelectTransport would pick, for
// startup logging.
func SelectedProvider(cfg *config.Config) string {
	for _, p := range providers {
		if p.match(cfg) {
			return p.name
		}
	}
	return "smtp"
}
