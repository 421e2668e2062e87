// Package contact handles the marketing site's quote/contact form:
// field validation plus forwarding to an external form endpoint.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tirehaus/arcade/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Form is one contact/quote request
type Form struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Consent  bool   `json:"consent"`
	// Source identifies which call site opened the form
	Source string `json:"source,omitempty"`
}

// ValidationError carries per-field validation messages
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Config holds contact service configuration
type Config struct {
	// EndpointURL is the external form endpoint submissions are
	// forwarded to. Empty disables forwarding (validate-only).
	EndpointURL string
	// Timeout bounds the forwarding request
	Timeout time.Duration
}

// DefaultConfig returns default contact configuration
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
	}
}

// Service validates and forwards contact forms
type Service struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new contact service
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Validate checks the form's required fields. A nil return means the
// form is acceptable.
func Validate(f Form) *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(f.FullName) == "" {
		fields["fullName"] = "Full name is required"
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "Email is invalid"
	}

	digits := nonDigits.ReplaceAllString(f.Phone, "")
	if strings.TrimSpace(f.Phone) == "" {
		fields["phone"] = "Phone number is required"
	} else if len(digits) != 10 {
		fields["phone"] = "Please enter a valid 10-digit phone number"
	}

	if !f.Consent {
		fields["consent"] = "You must agree to the terms"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates the form and forwards it to the configured
// endpoint. Validation failures never reach the endpoint.
func (s *Service) Submit(ctx context.Context, f Form) error {
	if verr := Validate(f); verr != nil {
		return verr
	}

	if s.cfg.EndpointURL == "" {
		s.logger.Info("contact form accepted, no forwarding endpoint configured",
			slog.String("source", f.Source))
		return nil
	}

	payload := map[string]string{
		"fullName":     f.FullName,
		"email":        f.Email,
		"phone":        f.Phone,
		"consentGiven": consentLabel(f.Consent),
		"source":       f.Source,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: form endpoint returned %d", model.ErrBackendUnavailable, resp.StatusCode)
	}

	s.logger.Info("contact form forwarded", slog.String("source", f.Source))
	return nil
}

func consentLabel(consent bool) string {
	if consent {
		return "Yes"
	}
	return "No"
}
