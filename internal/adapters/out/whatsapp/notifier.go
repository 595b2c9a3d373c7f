// Package whatsapp sends delivery notifications through the Twilio WhatsApp
// API. All sends are best effort; callers log failures and move on.
package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/pkg/observability"
)

const (
	twilioBaseURL  = "https://api.twilio.com/2010-04-01"
	requestTimeout = 10 * time.Second
)

// Config carries the Twilio credentials and sender number.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// IsConfigured reports whether all credentials are present. An empty config
// means notifications should be logged instead of sent.
func (c Config) IsConfigured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// Notifier implements ports.Notifier over the Twilio REST API.
type Notifier struct {
	config     Config
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewNotifier creates a Twilio-backed notifier.
func NewNotifier(config Config, logger *slog.Logger) *Notifier {
	return &Notifier{
		config:     config,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    twilioBaseURL,
		logger:     logger,
	}
}

// NewNotifierWithBaseURL creates a notifier pointed at a custom endpoint.
// Tests use it to talk to a local server.
func NewNotifierWithBaseURL(config Config, baseURL string, logger *slog.Logger) *Notifier {
	notifier := NewNotifier(config, logger)
	notifier.baseURL = strings.TrimSuffix(baseURL, "/")
	return notifier
}

// NotifyCustomer sends the current-status message to the customer's phone.
func (n *Notifier) NotifyCustomer(ctx context.Context, aggregate *delivery.Delivery) (string, error) {
	return n.send(ctx, aggregate.CustomerPhone(), customerMessage(aggregate))
}

// NotifyDriver sends the assignment briefing to the driver's phone.
func (n *Notifier) NotifyDriver(ctx context.Context, aggregate *delivery.Delivery, driverPhone string) (string, error) {
	return n.send(ctx, driverPhone, driverMessage(aggregate))
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (n *Notifier) send(ctx context.Context, phone, body string) (string, error) {
	sid, err := n.dispatch(ctx, phone, body)
	if err != nil {
		observability.NotificationFailuresTotal.Inc()
	}
	return sid, err
}

func (n *Notifier) dispatch(ctx context.Context, phone, body string) (string, error) {
	form := url.Values{}
	form.Set("To", FormatPhoneNumber(phone))
	form.Set("From", n.config.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", n.baseURL, n.config.AccountSID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	request.SetBasicAuth(n.config.AccountSID, n.config.AuthToken)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := n.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed twilioResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("unexpected twilio response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("twilio returned %d: %s", response.StatusCode, parsed.Message)
	}

	n.logger.Debug("whatsapp message sent", "sid", parsed.SID, "status", parsed.Status)
	return parsed.SID, nil
}
