package utils

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"capacita/config"
	"capacita/models"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const sendgridEndpoint = "/v3/mail/send"

// Mailer sends portal mail through SendGrid.
type Mailer struct {
	key       string
	host      string
	from      *sgmail.Email
	portalURL string
	log       *zap.Logger
}

func NewMailer(cfg *config.Config, log *zap.Logger) *Mailer {
	return &Mailer{
		key:       cfg.SendgridAPIKey,
		host:      "https://api.sendgrid.com",
		from:      sgmail.NewEmail(cfg.EmailSenderName, cfg.EmailSender),
		portalURL: cfg.PortalURL,
		log:       log,
	}
}

// SendWelcome tells a new user their account is ready.
func (m *Mailer) SendWelcome(ctx context.Context, email, fullName, role string) error {
	name := fullName
	if name == "" {
		name = email
	}
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Se creó tu cuenta en el portal de capacitaciones con el rol <b>%s</b>.</p>
		<p>Ingresa con este correo y la contraseña que te compartió tu administrador.</p>
		<a class="btn" href="%s">Ir al portal</a>`,
		html.EscapeString(name), roleLabel(role), html.EscapeString(m.portalURL))

	return m.send(ctx, email, name, "Tu cuenta está lista", getEmailTemplate("Bienvenido", body))
}

func (m *Mailer) send(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send mail: sendgrid answered %d: %s", res.StatusCode, res.Body)
	}

	m.log.Debug("mail sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

func roleLabel(role string) string {
	switch role {
	case models.RoleSuperAdmin:
		return "Super Admin"
	case models.RoleAdmin:
		return "Administrador"
	default:
		return "Espectador"
	}
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #3BB273; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>CAPACITACIONES</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">Este mensaje se generó automáticamente. No respondas a este correo.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
