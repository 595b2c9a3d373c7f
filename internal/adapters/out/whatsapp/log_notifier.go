package whatsapp

import (
	"context"
	"log/slog"

	"swiftdrop/internal/core/domain/model/delivery"
)

// LogNotifier stands in for the Twilio notifier when credentials are not
// configured. It logs the would-be message so local environments still show
// the full notification flow.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyCustomer logs the customer message instead of sending it.
func (n *LogNotifier) NotifyCustomer(_ context.Context, aggregate *delivery.Delivery) (string, error) {
	n.logger.Info("whatsapp disabled, skipping customer notification",
		"trackingCode", aggregate.TrackingCode().String(),
		"status", aggregate.Status().String(),
		"message", customerMessage(aggregate))
	return "", nil
}

// NotifyDriver logs the driver briefing instead of sending it.
func (n *LogNotifier) NotifyDriver(_ context.Context, aggregate *delivery.Delivery, driverPhone string) (string, error) {
	n.logger.Info("whatsapp disabled, skipping driver notification",
		"trackingCode", aggregate.TrackingCode().String(),
		"driverPhone", driverPhone)
	return "", nil
}
