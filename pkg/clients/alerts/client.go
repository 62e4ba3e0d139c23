package alerts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/egguard/egguard-backend/internal/config"
	"github.com/egguard/egguard-backend/internal/domain/models"
)

// Notifier forwards critical farm notifications to an external operator endpoint.
type Notifier interface {
	SendAlert(ctx context.Context, notification models.Notification) error
}

// WebhookClient is a resty-backed implementation of Notifier posting JSON to a
// configured webhook URL.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds an alert client using the provided configuration values.
func NewWebhookClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

type alertPayload struct {
	FarmID    string    `json:"farmId"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SendAlert posts the notification to the webhook. Any non-2xx response is an error.
func (c *WebhookClient) SendAlert(ctx context.Context, notification models.Notification) error {
	payload := alertPayload{
		FarmID:    notification.FarmID.Hex(),
		Severity:  string(notification.Severity),
		Message:   notification.Message,
		PhotoURL:  notification.PhotoURL,
		Timestamp: notification.Timestamp,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send alert webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
