// Package userrepo provides data transfer objects and mapping functions for
// user persistence. Driver-only attributes are flattened into nullable
// columns rather than a separate table; a user has at most one profile.
package userrepo

import (
	"time"

	"github.com/google/uuid"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
)

// UserDTO represents the database structure for persisting user aggregates.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex;size:255"`
	Phone        string `gorm:"uniqueIndex;size:32"`
	PasswordHash string
	Role         string `gorm:"size:16;index"`

	VehicleType         string
	VehicleNumber       string
	LicenseNumber       string
	Rating              float64
	IsAvailable         bool
	DeliveriesCompleted int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(aggregate *account.User) UserDTO {
	dto := UserDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Phone:        aggregate.Phone(),
		PasswordHash: aggregate.PasswordHash(),
		Role:         aggregate.Role().String(),
		IsActive:     aggregate.IsActive(),
		CreatedAt:    aggregate.CreatedAt(),
	}

	if profile := aggregate.Driver(); profile != nil {
		dto.VehicleType = profile.VehicleType
		dto.VehicleNumber = profile.VehicleNumber
		dto.LicenseNumber = profile.LicenseNumber
		dto.Rating = profile.Rating
		dto.IsAvailable = profile.IsAvailable
		dto.DeliveriesCompleted = profile.DeliveriesCompleted
	}

	return dto
}

// toDomain converts a database DTO back into a user aggregate.
func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := account.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var profile *account.DriverProfile
	if role == account.RoleDriver {
		profile = &account.DriverProfile{
			VehicleType:         dto.VehicleType,
			VehicleNumber:       dto.VehicleNumber,
			LicenseNumber:       dto.LicenseNumber,
			Rating:              dto.Rating,
			IsAvailable:         dto.IsAvailable,
			DeliveriesCompleted: dto.DeliveriesCompleted,
		}
	}

	return account.RestoreUser(account.RestoreUserParams{
		ID:           id,
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: dto.PasswordHash,
		Role:         role,
		Driver:       profile,
		IsActive:     dto.IsActive,
		CreatedAt:    dto.CreatedAt,
	})
}
