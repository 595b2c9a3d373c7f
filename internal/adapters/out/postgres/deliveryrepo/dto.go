// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. Scalar fields live in columns so list and stats
// queries stay cheap; the nested structures (addresses, package, timeline,
// proof, notifications) are stored as JSON documents.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Status is stored as its wire name so raw queries can filter
// without knowing the enum ordering.
type DeliveryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode string    `gorm:"uniqueIndex;size:32"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerPhone string
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`

	PickupAddress   AddressDTO        `gorm:"serializer:json;type:jsonb"`
	DeliveryAddress AddressDTO        `gorm:"serializer:json;type:jsonb"`
	PackageDetails  PackageDetailsDTO `gorm:"serializer:json;type:jsonb"`

	Priority            string `gorm:"size:16;index"`
	SpecialInstructions string
	InternalNotes       string

	Status   string             `gorm:"size:32;index"`
	Timeline []TimelineEntryDTO `gorm:"serializer:json;type:jsonb"`

	AssignedAt            *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time
	EstimatedPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time `gorm:"index"`

	Price         int64
	PaymentStatus string             `gorm:"size:16"`
	Proof         *ProofDTO          `gorm:"serializer:json;type:jsonb"`
	Notifications []NotificationDTO  `gorm:"serializer:json;type:jsonb"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO is the JSON shape of an address inside the delivery row.
type AddressDTO struct {
	Line      string   `json:"line"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// PackageDetailsDTO is the JSON shape of the package descriptor.
type PackageDetailsDTO struct {
	Description   string  `json:"description"`
	Weight        float64 `json:"weight,omitempty"`
	Length        float64 `json:"length,omitempty"`
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	DeclaredValue int64   `json:"declaredValue,omitempty"`
	Category      string  `json:"category"`
}

// TimelineEntryDTO is the JSON shape of one timeline ledger entry.
type TimelineEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// ProofDTO is the JSON shape of the proof of delivery.
type ProofDTO struct {
	PhotoURL   string    `json:"photoUrl,omitempty"`
	PhotoID    string    `json:"photoId,omitempty"`
	Signature  string    `json:"signature,omitempty"`
	ReceivedBy string    `json:"receivedBy"`
	Notes      string    `json:"notes,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NotificationDTO is the JSON shape of one outbound notification record.
type NotificationDTO struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	MessageSID string    `json:"messageSid,omitempty"`
}

func geoPointToCoords(p *kernel.GeoPoint) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	la, ln := p.Latitude(), p.Longitude()
	return &la, &ln
}

func coordsToGeoPoint(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func addressFromDomain(a delivery.Address) AddressDTO {
	lat, lng := geoPointToCoords(a.Location())
	return AddressDTO{
		Line:      a.Line(),
		City:      a.City(),
		State:     a.State(),
		ZipCode:   a.ZipCode(),
		Latitude:  lat,
		Longitude: lng,
	}
}

func addressToDomain(dto AddressDTO) (delivery.Address, error) {
	location, err := coordsToGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return delivery.Address{}, err
	}
	return delivery.NewAddress(dto.Line, dto.City, dto.State, dto.ZipCode, location)
}

func packageFromDomain(p delivery.PackageDetails) PackageDetailsDTO {
	dims := p.Dimensions()
	return PackageDetailsDTO{
		Description:   p.Description(),
		Weight:        p.Weight(),
		Length:        dims.Length,
		Width:         dims.Width,
		Height:        dims.Height,
		DeclaredValue: int64(p.DeclaredValue()),
		Category:      p.Category().String(),
	}
}

func packageToDomain(dto PackageDetailsDTO) (delivery.PackageDetails, error) {
	category, err := delivery.ParseCategory(dto.Category)
	if err != nil {
		return delivery.PackageDetails{}, err
	}
	return delivery.NewPackageDetails(
		dto.Description,
		dto.Weight,
		delivery.Dimensions{Length: dto.Length, Width: dto.Width, Height: dto.Height},
		kernel.Money(dto.DeclaredValue),
		category,
	)
}

func timelineFromDomain(t delivery.Timeline) []TimelineEntryDTO {
	entries := t.Entries()
	dtos := make([]TimelineEntryDTO, 0, len(entries))
	for _, entry := range entries {
		lat, lng := geoPointToCoords(entry.Location())
		dtos = append(dtos, TimelineEntryDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Latitude:  lat,
			Longitude: lng,
			Note:      entry.Note(),
		})
	}
	return dtos
}

func timelineToDomain(dtos []TimelineEntryDTO) ([]delivery.TimelineEntry, error) {
	entries := make([]delivery.TimelineEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := delivery.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		location, err := coordsToGeoPoint(dto.Latitude, dto.Longitude)
		if err != nil {
			return nil, err
		}
		entries = append(entries, delivery.NewTimelineEntry(status, dto.Timestamp, location, dto.Note))
	}
	return entries, nil
}

func proofFromDomain(p *delivery.ProofOfDelivery) *ProofDTO {
	if p == nil {
		return nil
	}
	lat, lng := geoPointToCoords(p.Location())
	return &ProofDTO{
		PhotoURL:   p.PhotoURL(),
		PhotoID:    p.PhotoID(),
		Signature:  p.Signature(),
		ReceivedBy: p.ReceivedBy(),
		Notes:      p.Notes(),
		Latitude:   lat,
		Longitude:  lng,
		Timestamp:  p.Timestamp(),
	}
}

func proofToDomain(dto *ProofDTO) (*delivery.ProofOfDelivery, error) {
	if dto == nil {
		return nil, nil
	}
	location, err := coordsToGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	proof, err := delivery.NewProofOfDelivery(
		dto.PhotoURL, dto.PhotoID, dto.Signature, dto.ReceivedBy, dto.Notes,
		location, dto.Timestamp)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func notificationsFromDomain(records []delivery.NotificationRecord) []NotificationDTO {
	dtos := make([]NotificationDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, NotificationDTO{
			Status:     record.Status.String(),
			Timestamp:  record.Timestamp,
			MessageSID: record.MessageSID,
		})
	}
	return dtos
}

func notificationsToDomain(dtos []NotificationDTO) ([]delivery.NotificationRecord, error) {
	records := make([]delivery.NotificationRecord, 0, len(dtos))
	for _, dto := range dtos {
		status, err := delivery.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		records = append(records, delivery.NotificationRecord{
			Status:     status,
			Timestamp:  dto.Timestamp,
			MessageSID: dto.MessageSID,
		})
	}
	return records, nil
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return DeliveryDTO{
		ID:                    aggregate.ID().Bytes(),
		TrackingCode:          aggregate.TrackingCode().String(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		CustomerName:          aggregate.CustomerName(),
		CustomerPhone:         aggregate.CustomerPhone(),
		DriverID:              driverID,
		PickupAddress:         addressFromDomain(aggregate.PickupAddress()),
		DeliveryAddress:       addressFromDomain(aggregate.DeliveryAddress()),
		PackageDetails:        packageFromDomain(aggregate.PackageDetails()),
		Priority:              aggregate.Priority().String(),
		SpecialInstructions:   aggregate.SpecialInstructions(),
		InternalNotes:         aggregate.InternalNotes(),
		Status:                aggregate.Status().String(),
		Timeline:              timelineFromDomain(aggregate.Timeline()),
		AssignedAt:            aggregate.AssignedAt(),
		ActualPickupTime:      aggregate.ActualPickupTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		EstimatedPickupTime:   aggregate.EstimatedPickupTime(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		Price:                 int64(aggregate.Price()),
		PaymentStatus:         aggregate.PaymentStatus().String(),
		Proof:                 proofFromDomain(aggregate.Proof()),
		Notifications:         notificationsFromDomain(aggregate.Notifications()),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back into a delivery aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	trackingCode, err := delivery.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := addressToDomain(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	dropoff, err := addressToDomain(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	pkg, err := packageToDomain(dto.PackageDetails)
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := delivery.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := delivery.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	timeline, err := timelineToDomain(dto.Timeline)
	if err != nil {
		return nil, err
	}
	proof, err := proofToDomain(dto.Proof)
	if err != nil {
		return nil, err
	}
	notifications, err := notificationsToDomain(dto.Notifications)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.RestoreDeliveryParams{
		ID:                    id,
		TrackingCode:          trackingCode,
		CustomerID:            customerID,
		CustomerName:          dto.CustomerName,
		CustomerPhone:         dto.CustomerPhone,
		DriverID:              driverID,
		PickupAddress:         pickup,
		DeliveryAddress:       dropoff,
		PackageDetails:        pkg,
		Priority:              priority,
		SpecialInstructions:   dto.SpecialInstructions,
		InternalNotes:         dto.InternalNotes,
		Status:                status,
		Timeline:              timeline,
		AssignedAt:            dto.AssignedAt,
		ActualPickupTime:      dto.ActualPickupTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		EstimatedPickupTime:   dto.EstimatedPickupTime,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		Price:                 kernel.Money(dto.Price),
		PaymentStatus:         paymentStatus,
		Proof:                 proof,
		Notifications:         notifications,
		CreatedAt:             dto.CreatedAt,
	})
}
