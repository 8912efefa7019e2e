package usecase

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/mail"
)

const autoReplySubject = "Thank you for contacting Rapture Twelve"

// teamNotificationTemplate renders the internal notification: a table of the
// submitted fields plus submission metadata.
const teamNotificationTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8f9fa; padding: 20px;">
    <div style="background: #000; color: #fff; padding: 20px; text-align: center;">
        <h2 style="margin: 0;">RAPTURE TWELVE</h2>
        <p style="margin: 5px 0 0 0; letter-spacing: 2px; font-size: 12px;">INFILTRATE &bull; EXPLOIT &bull; SECURE</p>
    </div>
    <div style="background: #fff; padding: 30px; border: 1px solid #ddd;">
        <h3 style="color: #333; margin-top: 0;">New Contact Form Submission</h3>
        <table style="width: 100%; border-collapse: collapse;">
            <tr>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee; font-weight: bold; width: 120px;">Name:</td>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee;">{{.Name}}</td>
            </tr>
            <tr>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee; font-weight: bold;">Email:</td>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee;"><a href="mailto:{{.Email}}">{{.Email}}</a></td>
            </tr>
            <tr>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee; font-weight: bold;">Organization:</td>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee;">{{.Organization}}</td>
            </tr>
            {{if .Role}}<tr>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee; font-weight: bold;">Role:</td>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee;">{{.Role}}</td>
            </tr>{{end}}
            {{if .Phone}}<tr>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee; font-weight: bold;">Phone:</td>
                <td style="padding: 10px 0; border-bottom: 1px solid #eee;"><a href="tel:{{.Phone}}">{{.Phone}}</a></td>
            </tr>{{end}}
            <tr>
                <td style="padding: 10px 0; font-weight: bold; vertical-align: top;">Message:</td>
                <td style="padding: 10px 0;">{{.Message}}</td>
            </tr>
        </table>
        <div style="margin-top: 20px; padding: 15px; background: #f8f9fa; border-left: 4px solid #000;">
            <p style="margin: 0; font-size: 14px; color: #666;">
                Submitted on {{.SubmittedAt}}{{if .IP}} from IP: {{.IP}}{{end}}
            </p>
        </div>
    </div>
</div>`

// autoReplyTemplate renders the confirmation sent back to the submitter. The
// staff contact blocks are fixed regardless of submission content.
const autoReplyTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8f9fa; padding: 20px;">
    <div style="background: #000; color: #fff; padding: 20px; text-align: center;">
        <h2 style="margin: 0;">RAPTURE TWELVE</h2>
        <p style="margin: 5px 0 0 0; letter-spacing: 2px; font-size: 12px;">INFILTRATE &bull; EXPLOIT &bull; SECURE</p>
    </div>
    <div style="background: #fff; padding: 30px; border: 1px solid #ddd;">
        <h3 style="color: #333; margin-top: 0;">Thank you for your inquiry, {{.Name}}</h3>
        <p>We have received your message regarding cybersecurity and AI solutions for {{.Organization}}. Our team will review your requirements and respond within 24 hours.</p>
        <div style="background: #f8f9fa; padding: 20px; margin: 20px 0; border-left: 4px solid #000;">
            <h4 style="margin: 0 0 10px 0; color: #333;">Your Message:</h4>
            <p style="margin: 0; color: #666;">{{.Message}}</p>
        </div>
        <p>For urgent matters, please contact our leadership team directly:</p>
        <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
            <h4 style="margin: 0 0 10px 0; color: #333;">Antony Shane - Founder &amp; CEO</h4>
            <p style="margin: 0;">
                <a href="tel:+919790791723" style="color: #000; text-decoration: none;">+91 97907 91723</a><br>
                <a href="mailto:antonyshane@rapturetwelve.com" style="color: #000; text-decoration: none;">antonyshane@rapturetwelve.com</a>
            </p>
        </div>
        <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
            <h4 style="margin: 0 0 10px 0; color: #333;">Vinay Venkat Kruthin - Co-Founder &amp; COO</h4>
            <p style="margin: 0;">
                <a href="tel:+918925126949" style="color: #000; text-decoration: none;">+91 89251 26949</a><br>
                <a href="mailto:kruthinvinay@rapturetwelve.com" style="color: #000; text-decoration: none;">kruthinvinay@rapturetwelve.com</a>
            </p>
        </div>
        <p style="margin-top: 30px; font-size: 14px; color: #666;">
            Best regards,<br>
            The Rapture Twelve Team<br>
            Defense-grade cybersecurity and AI solutions
        </p>
    </div>
</div>`

var (
	teamNotificationTmpl = template.Must(template.New("team_notification").Parse(teamNotificationTemplate))
	autoReplyTmpl        = template.Must(template.New("auto_reply").Parse(autoReplyTemplate))
)

type teamNotificationData struct {
	Name         string
	Email        string
	Organization string
	Role         string
	Phone        string
	Message      template.HTML
	SubmittedAt  string
	IP           string
}

type autoReplyData struct {
	Name         string
	Organization string
	Message      template.HTML
}

// messageHTML escapes the free-text message and converts line breaks so
// multi-line messages render as written.
func messageHTML(msg string) template.HTML {
	escaped := template.HTMLEscapeString(msg)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func buildTeamNotification(sub *domain.ContactSubmission, meta domain.RequestMeta, from string, to []string) (*mail.Message, error) {
	submittedAt := meta.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	var body bytes.Buffer
	err := teamNotificationTmpl.Execute(&body, teamNotificationData{
		Name:         sub.Name,
		Email:        sub.Email,
		Organization: sub.Organization,
		Role:         sub.Role,
		Phone:        sub.Phone,
		Message:      messageHTML(sub.Message),
		SubmittedAt:  submittedAt.UTC().Format(time.RFC1123),
		IP:           meta.IP,
	})
	if err != nil {
		return nil, err
	}

	msg := &mail.Message{
		From:     from,
		To:       to,
		Subject:  "New Cybersecurity Inquiry - " + sub.Organization,
		HTMLBody: body.String(),
	}
	if sub.Attachment != nil {
		msg.Attachments = []mail.Attachment{{
			Filename:    sub.Attachment.Filename,
			ContentType: sub.Attachment.ContentType,
			Content:     sub.Attachment.Content,
		}}
	}
	return msg, nil
}

func buildAutoReply(sub *domain.ContactSubmission, from string) (*mail.Message, error) {
	var body bytes.Buffer
	err := autoReplyTmpl.Execute(&body, autoReplyData{
		Name:         sub.Name,
		Organization: sub.Organization,
		Message:      messageHTML(sub.Message),
	})
	if err != nil {
		return nil, err
	}

	return &mail.Message{
		From:     from,
		To:       []string{sub.Email},
		Subject:  autoReplySubject,
		HTMLBody: body.String(),
	}, nil
}
