package http

import (
	"time"

	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// GeoPointDTO is a GeoJSON point. Coordinates are [longitude, latitude];
// the domain keeps named fields, so the order only exists here at the wire.
type GeoPointDTO struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func geoPointFromDomain(p *kernel.GeoPoint) *GeoPointDTO {
	if p == nil {
		return nil
	}
	return &GeoPointDTO{Type: "Point", Coordinates: [2]float64{p.Longitude(), p.Latitude()}}
}

func (dto *GeoPointDTO) toDomain() (*kernel.GeoPoint, error) {
	if dto == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(dto.Coordinates[1], dto.Coordinates[0])
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// AddressDTO mirrors delivery.Address on the wire.
type AddressDTO struct {
	Line     string       `json:"line"`
	City     string       `json:"city"`
	State    string       `json:"state"`
	ZipCode  string       `json:"zipCode,omitempty"`
	Location *GeoPointDTO `json:"location,omitempty"`
}

func addressFromDomain(a delivery.Address) AddressDTO {
	return AddressDTO{
		Line:     a.Line(),
		City:     a.City(),
		State:    a.State(),
		ZipCode:  a.ZipCode(),
		Location: geoPointFromDomain(a.Location()),
	}
}

func (dto AddressDTO) toDomain() (delivery.Address, error) {
	location, err := dto.Location.toDomain()
	if err != nil {
		return delivery.Address{}, err
	}
	return delivery.NewAddress(dto.Line, dto.City, dto.State, dto.ZipCode, location)
}

// DimensionsDTO mirrors delivery.Dimensions in centimetres.
type DimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PackageDTO mirrors delivery.PackageDetails on the wire.
type PackageDTO struct {
	Description   string         `json:"description"`
	Weight        float64        `json:"weight,omitempty"`
	Dimensions    *DimensionsDTO `json:"dimensions,omitempty"`
	DeclaredValue int64          `json:"declaredValue,omitempty"`
	Category      string         `json:"category,omitempty"`
}

func packageFromDomain(p delivery.PackageDetails) PackageDTO {
	dto := PackageDTO{
		Description:   p.Description(),
		Weight:        p.Weight(),
		DeclaredValue: int64(p.DeclaredValue()),
		Category:      p.Category().String(),
	}
	if d := p.Dimensions(); d != (delivery.Dimensions{}) {
		dto.Dimensions = &DimensionsDTO{Length: d.Length, Width: d.Width, Height: d.Height}
	}
	return dto
}

func (dto PackageDTO) toDomain() (delivery.PackageDetails, error) {
	category, err := delivery.ParseCategory(dto.Category)
	if err != nil {
		return delivery.PackageDetails{}, err
	}
	var dimensions delivery.Dimensions
	if dto.Dimensions != nil {
		dimensions = delivery.Dimensions{
			Length: dto.Dimensions.Length,
			Width:  dto.Dimensions.Width,
			Height: dto.Dimensions.Height,
		}
	}
	return delivery.NewPackageDetails(dto.Description, dto.Weight, dimensions,
		kernel.Money(dto.DeclaredValue), category)
}

// CreateDeliveryRequest is the payload for POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	CustomerName          string     `json:"customerName"`
	CustomerPhone         string     `json:"customerPhone"`
	PickupAddress         AddressDTO `json:"pickupAddress"`
	DeliveryAddress       AddressDTO `json:"deliveryAddress"`
	Package               PackageDTO `json:"package"`
	Priority              string     `json:"priority,omitempty"`
	SpecialInstructions   string     `json:"specialInstructions,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
}

// ChangeStatusRequest is the payload for PATCH .../status.
type ChangeStatusRequest struct {
	Status   string       `json:"status"`
	Note     string       `json:"note,omitempty"`
	Location *GeoPointDTO `json:"location,omitempty"`
}

// AssignDriverRequest is the payload for POST .../assign.
type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// AttachProofRequest is the payload for POST .../proof.
type AttachProofRequest struct {
	PhotoURL   string       `json:"photoUrl,omitempty"`
	PhotoID    string       `json:"photoId,omitempty"`
	Signature  string       `json:"signature,omitempty"`
	ReceivedBy string       `json:"receivedBy"`
	Notes      string       `json:"notes,omitempty"`
	Location   *GeoPointDTO `json:"location,omitempty"`
}

// RegisterRequest is the payload for POST /api/v1/auth/register.
type RegisterRequest struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Password string            `json:"password"`
	Role     string            `json:"role,omitempty"`
	Driver   *DriverProfileDTO `json:"driver,omitempty"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload for PUT /api/v1/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// DriverProfileDTO mirrors account.DriverProfile on the wire.
type DriverProfileDTO struct {
	VehicleType         string  `json:"vehicleType,omitempty"`
	VehicleNumber       string  `json:"vehicleNumber,omitempty"`
	LicenseNumber       string  `json:"licenseNumber,omitempty"`
	Rating              float64 `json:"rating,omitempty"`
	IsAvailable         bool    `json:"isAvailable"`
	DeliveriesCompleted int     `json:"deliveriesCompleted"`
}

// UserResponse is the account shape returned by auth endpoints.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      string            `json:"role"`
	IsActive  bool              `json:"isActive"`
	Driver    *DriverProfileDTO `json:"driver,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func userFromDomain(u *account.User) UserResponse {
	response := UserResponse{
		ID:        u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
	if driver := u.Driver(); driver != nil {
		response.Driver = &DriverProfileDTO{
			VehicleType:         driver.VehicleType,
			VehicleNumber:       driver.VehicleNumber,
			LicenseNumber:       driver.LicenseNumber,
			Rating:              driver.Rating,
			IsAvailable:         driver.IsAvailable,
			DeliveriesCompleted: driver.DeliveriesCompleted,
		}
	}
	return response
}

// AuthResponse carries a fresh token plus the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TimelineEntryDTO is one ledger entry in a delivery response.
type TimelineEntryDTO struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Location  *GeoPointDTO `json:"location,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// ProofDTO is the proof of delivery in a delivery response.
type ProofDTO struct {
	PhotoURL   string       `json:"photoUrl,omitempty"`
	PhotoID    string       `json:"photoId,omitempty"`
	Signature  string       `json:"signature,omitempty"`
	ReceivedBy string       `json:"receivedBy"`
	Notes      string       `json:"notes,omitempty"`
	Location   *GeoPointDTO `json:"location,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NotificationDTO is one logged notification in a delivery response.
type NotificationDTO struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	MessageSID string    `json:"messageSid,omitempty"`
}

// DeliveryResponse is the full authenticated view of a delivery.
type DeliveryResponse struct {
	ID                    string             `json:"id"`
	TrackingCode          string             `json:"trackingCode"`
	CustomerID            string             `json:"customerId"`
	CustomerName          string             `json:"customerName"`
	CustomerPhone         string             `json:"customerPhone"`
	DriverID              *string            `json:"driverId,omitempty"`
	PickupAddress         AddressDTO         `json:"pickupAddress"`
	DeliveryAddress       AddressDTO         `json:"deliveryAddress"`
	Package               PackageDTO         `json:"package"`
	Priority              string             `json:"priority"`
	SpecialInstructions   string             `json:"specialInstructions,omitempty"`
	Status                string             `json:"status"`
	Timeline              []TimelineEntryDTO `json:"timeline"`
	AssignedAt            *time.Time         `json:"assignedAt,omitempty"`
	ActualPickupTime      *time.Time         `json:"actualPickupTime,omitempty"`
	ActualDeliveryTime    *time.Time         `json:"actualDeliveryTime,omitempty"`
	EstimatedDeliveryTime *time.Time         `json:"estimatedDeliveryTime,omitempty"`
	Price                 int64              `json:"price"`
	PaymentStatus         string             `json:"paymentStatus"`
	Proof                 *ProofDTO          `json:"proof,omitempty"`
	Notifications         []NotificationDTO  `json:"notifications,omitempty"`
	CreatedAt             time.Time          `json:"createdAt"`
}

func deliveryFromDomain(d *delivery.Delivery) DeliveryResponse {
	response := DeliveryResponse{
		ID:                    d.ID().String(),
		TrackingCode:          d.TrackingCode().String(),
		CustomerID:            d.CustomerID().String(),
		CustomerName:          d.CustomerName(),
		CustomerPhone:         d.CustomerPhone(),
		PickupAddress:         addressFromDomain(d.PickupAddress()),
		DeliveryAddress:       addressFromDomain(d.DeliveryAddress()),
		Package:               packageFromDomain(d.PackageDetails()),
		Priority:              d.Priority().String(),
		SpecialInstructions:   d.SpecialInstructions(),
		Status:                d.Status().String(),
		AssignedAt:            d.AssignedAt(),
		ActualPickupTime:      d.ActualPickupTime(),
		ActualDeliveryTime:    d.ActualDeliveryTime(),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime(),
		Price:                 int64(d.Price()),
		PaymentStatus:         d.PaymentStatus().String(),
		CreatedAt:             d.CreatedAt(),
	}

	if driverID := d.DriverID(); driverID != nil {
		id := driverID.String()
		response.DriverID = &id
	}

	entries := d.Timeline().Entries()
	response.Timeline = make([]TimelineEntryDTO, 0, len(entries))
	for _, entry := range entries {
		response.Timeline = append(response.Timeline, TimelineEntryDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Location:  geoPointFromDomain(entry.Location()),
			Note:      entry.Note(),
		})
	}

	if proof := d.Proof(); proof != nil {
		response.Proof = &ProofDTO{
			PhotoURL:   proof.PhotoURL(),
			PhotoID:    proof.PhotoID(),
			Signature:  proof.Signature(),
			ReceivedBy: proof.ReceivedBy(),
			Notes:      proof.Notes(),
			Location:   geoPointFromDomain(proof.Location()),
			Timestamp:  proof.Timestamp(),
		}
	}

	for _, record := range d.Notifications() {
		response.Notifications = append(response.Notifications, NotificationDTO{
			Status:     record.Status.String(),
			Timestamp:  record.Timestamp,
			MessageSID: record.MessageSID,
		})
	}

	return response
}

// DeliverySummaryDTO is one row of the listing endpoint.
type DeliverySummaryDTO struct {
	ID                    string     `json:"id"`
	TrackingCode          string     `json:"trackingCode"`
	Status                string     `json:"status"`
	Priority              string     `json:"priority"`
	CustomerName          string     `json:"customerName"`
	PickupCity            string     `json:"pickupCity"`
	DeliveryCity          string     `json:"deliveryCity"`
	DriverID              *string    `json:"driverId,omitempty"`
	Price                 int64      `json:"price"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// ListDeliveriesResponse is the paged listing payload.
type ListDeliveriesResponse struct {
	Deliveries []DeliverySummaryDTO `json:"deliveries"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
}

func listFromReadModel(response queries.ListDeliveriesQueryResponse) ListDeliveriesResponse {
	deliveries := make([]DeliverySummaryDTO, 0, len(response.Deliveries))
	for _, summary := range response.Deliveries {
		dto := DeliverySummaryDTO{
			ID:                    summary.ID.String(),
			TrackingCode:          summary.TrackingCode,
			Status:                summary.Status,
			Priority:              summary.Priority,
			CustomerName:          summary.CustomerName,
			PickupCity:            summary.PickupCity,
			DeliveryCity:          summary.DeliveryCity,
			Price:                 int64(summary.Price),
			EstimatedDeliveryTime: summary.EstimatedDeliveryTime,
			CreatedAt:             summary.CreatedAt,
		}
		if summary.DriverID != nil {
			id := summary.DriverID.String()
			dto.DriverID = &id
		}
		deliveries = append(deliveries, dto)
	}

	return ListDeliveriesResponse{
		Deliveries: deliveries,
		Total:      response.Total,
		Page:       response.Page,
		PageSize:   response.PageSize,
	}
}

// parsePriority applies the default when the request omits the priority.
func parsePriority(raw string) (delivery.Priority, error) {
	if raw == "" {
		return delivery.DefaultPriority, nil
	}
	priority, err := delivery.ParsePriority(raw)
	if err != nil {
		return delivery.DefaultPriority, errs.NewValueIsInvalidErrorWithCause("priority", err)
	}
	return priority, nil
}
