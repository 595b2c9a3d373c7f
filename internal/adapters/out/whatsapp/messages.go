package whatsapp

import (
	"fmt"
	"strings"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
)

// timeLayout renders timestamps in customer messages.
const timeLayout = "Mon, 02 Jan 2006 15:04"

// customerMessage renders the status update sent to the customer. Statuses
// without a dedicated template fall back to a plain update line.
func customerMessage(aggregate *delivery.Delivery) string {
	code := aggregate.TrackingCode().String()

	switch aggregate.Status() {
	case delivery.Pending:
		return fmt.Sprintf("📦 *Delivery Created*\n\nYour package is being processed.\n\nTracking: %s\n\nWe'll notify you when a driver is assigned.", code)
	case delivery.Assigned:
		return fmt.Sprintf("🚚 *Driver Assigned*\n\nA driver has been assigned to your package.\n\nTracking: %s\n\nYour package will be picked up soon.", code)
	case delivery.PickedUp:
		return fmt.Sprintf("✅ *Package Picked Up*\n\nYour package has been picked up.\n\nTracking: %s\n\nEstimated Delivery: %s", code, formatEstimate(aggregate.EstimatedDeliveryTime()))
	case delivery.InTransit:
		return fmt.Sprintf("🛣️ *In Transit*\n\nYour package is on its way!\n\nTracking: %s\n\nEstimated Arrival: %s", code, formatEstimate(aggregate.EstimatedDeliveryTime()))
	case delivery.OutForDelivery:
		return fmt.Sprintf("📍 *Out for Delivery*\n\nYour package is nearby and will be delivered shortly.\n\nTracking: %s", code)
	case delivery.Delivered:
		receivedBy := aggregate.CustomerName()
		deliveredAt := formatEstimate(aggregate.ActualDeliveryTime())
		if proof := aggregate.Proof(); proof != nil && proof.ReceivedBy() != "" {
			receivedBy = proof.ReceivedBy()
		}
		return fmt.Sprintf("✨ *Delivered Successfully*\n\nYour package has been delivered!\n\nDelivered to: %s\nTime: %s\n\nTracking: %s\n\nThank you for using our service!", receivedBy, deliveredAt, code)
	case delivery.Failed:
		return fmt.Sprintf("⚠️ *Delivery Failed*\n\nWe couldn't deliver your package.\n\nReason: %s\n\nTracking: %s\n\nPlease contact support.", lastNote(aggregate, "Unknown"), code)
	case delivery.Cancelled:
		return fmt.Sprintf("❌ *Delivery Cancelled*\n\nYour delivery has been cancelled.\n\nTracking: %s\n\nReason: %s", code, lastNote(aggregate, "Customer request"))
	default:
		return fmt.Sprintf("Delivery Update: %s\n\nTracking: %s", aggregate.Status().String(), code)
	}
}

// driverMessage renders the assignment notification sent to the driver.
func driverMessage(aggregate *delivery.Delivery) string {
	return fmt.Sprintf(
		"🚚 *New Delivery Assignment*\n\nTracking: %s\n\nPickup:\n%s\n\nDeliver to:\n%s\n\nCustomer: %s\nPhone: %s\n\nPackage: %s\n\nPlease accept or reject this delivery in the app.",
		aggregate.TrackingCode().String(),
		formatAddress(aggregate.PickupAddress()),
		formatAddress(aggregate.DeliveryAddress()),
		aggregate.CustomerName(),
		aggregate.CustomerPhone(),
		aggregate.PackageDetails().Description(),
	)
}

func formatAddress(address delivery.Address) string {
	parts := []string{address.Line(), address.City(), address.State()}
	if address.ZipCode() != "" {
		parts = append(parts, address.ZipCode())
	}
	return strings.Join(parts, ", ")
}

func formatEstimate(t *time.Time) string {
	if t == nil {
		return "TBD"
	}
	return t.Format(timeLayout)
}

// lastNote pulls the newest timeline note, falling back when the transition
// carried none.
func lastNote(aggregate *delivery.Delivery, fallback string) string {
	if entry, ok := aggregate.Timeline().Last(); ok && entry.Note() != "" {
		return entry.Note()
	}
	return fallback
}
