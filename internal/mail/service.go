// Package mail delivers route itineraries by email over STARTTLS SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/itinerary"
	"github.com/storeroute/storeroute/internal/routing"
)

// Config holds SMTP delivery configuration. Every field is required and must
// not be a placeholder value.
type Config struct {
	Recipient      string
	SenderEmail    string
	SenderPassword string
	SMTPServer     string
	SMTPPort       int
}

// Service sends route emails with the RTF itinerary attached.
type Service struct {
	cfg    Config
	logger zerolog.Logger

	// now is overridable in tests for deterministic subjects and filenames.
	now func() time.Time
}

// NewService validates the configuration and creates a mail service.
// Missing or placeholder fields fail fast, before any send is attempted.
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	fields := map[string]string{
		"recipient":       cfg.Recipient,
		"sender_email":    cfg.SenderEmail,
		"sender_password": cfg.SenderPassword,
		"smtp_server":     cfg.SMTPServer,
	}
	for name, value := range fields {
		if value == "" || strings.HasPrefix(value, "your-") {
			return nil, fmt.Errorf("mail: please configure email.%s", name)
		}
	}
	if cfg.SMTPPort == 0 {
		return nil, fmt.Errorf("mail: please configure email.smtp_port")
	}

	return &Service{cfg: cfg, logger: logger, now: time.Now}, nil
}

// Recipient returns the configured delivery address.
func (s *Service) Recipient() string {
	return s.cfg.Recipient
}

// SendRoutePlan submits one message with a plain-text summary body and the
// RTF itinerary as attachment, returning the attachment filename it stamped.
// The attachment is streamed from memory, so no temporary file is left behind
// on either outcome.
func (s *Service) SendRoutePlan(ctx context.Context, plan *routing.Plan) (string, error) {
	now := s.now()
	filename := itinerary.Filename(now)

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.SenderEmail); err != nil {
		return "", fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(s.cfg.Recipient); err != nil {
		return "", fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject("Your Optimized Route - " + now.Format("2006-01-02"))
	msg.SetBodyString(gomail.TypeTextPlain, buildBody(plan))

	attachment := itinerary.Render(plan.Stops)
	if err := msg.AttachReader(filename, bytes.NewReader(attachment)); err != nil {
		return "", fmt.Errorf("attaching itinerary: %w", err)
	}

	client, err := s.newClient()
	if err != nil {
		return "", err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error().Err(err).Msg("route email delivery failed")
		return "", fmt.Errorf("sending route email: %w", err)
	}

	s.logger.Info().
		Str("recipient", s.cfg.Recipient).
		Str("filename", filename).
		Int("stops", len(plan.Stops)).
		Msg("route email sent")

	return filename, nil
}

// VerifyConfiguration dials and authenticates against the SMTP server without
// sending a message.
func (s *Service) VerifyConfiguration(ctx context.Context) error {
	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("email configuration error: %w", err)
	}
	return client.Close()
}

func (s *Service) newClient() (*gomail.Client, error) {
	client, err := gomail.NewClient(s.cfg.SMTPServer,
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.SenderEmail),
		gomail.WithPassword(s.cfg.SenderPassword),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}
	return client, nil
}

// buildBody renders the plain-text summary. Metrics lines show N/A when the
// plan came from the fallback path.
func buildBody(plan *routing.Plan) string {
	distance := "N/A"
	duration := "N/A"
	fuelCost := "N/A"
	stops := "0"
	if plan.Metrics != nil {
		distance = fmt.Sprintf("%.2f km", plan.Metrics.TotalDistanceKM)
		duration = plan.Metrics.TotalDurationFormatted
		fuelCost = fmt.Sprintf("$%.2f CAD", plan.Metrics.EstimatedFuelCostCAD)
		stops = fmt.Sprintf("%d", plan.Metrics.TotalStops)
	}

	directions := plan.DirectionsURL
	if directions == "" {
		directions = "Directions link not available"
	}

	var b strings.Builder
	b.WriteString("Hello!\n\n")
	b.WriteString("Your optimized route has been generated and is ready to use.\n\n")
	b.WriteString("ROUTE SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Distance: %s\n", distance)
	fmt.Fprintf(&b, "- Travel Time: %s\n", duration)
	fmt.Fprintf(&b, "- Estimated Fuel Cost: %s\n", fuelCost)
	fmt.Fprintf(&b, "- Total Stops: %s\n\n", stops)
	b.WriteString("STORE LOCATIONS:\n")
	b.WriteString("The attached file contains your store list with clickable addresses that open directly in the map application.\n\n")
	b.WriteString("COMPLETE ROUTE:\n")
	b.WriteString(directions + "\n\n")
	b.WriteString("Click the link above to open the complete optimized route with turn-by-turn directions.\n")
	return b.String()
}
