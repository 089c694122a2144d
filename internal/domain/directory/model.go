package directory

import (
	"time"

	"github.com/google/uuid"
)

// Staff maps to the staff table. Staff are never hard-deleted; deactivating
// removes them from calendar views while existing appointments stay valid.
type Staff struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Role        *string   `db:"role" json:"role,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Client maps to the client table.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Service maps to the service table. Duration drives the default appointment
// length offered to the booking flow.
type Service struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Category        *string   `db:"category" json:"category,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
