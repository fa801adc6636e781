package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Role string

const (
	RoleManager     Role = "manager"
	RoleSocialMedia Role = "social_media"
)

// roleLabels maps role tags to their pt-BR display labels.
var roleLabels = map[Role]string{
	RoleManager:     "Gerente",
	RoleSocialMedia: "Social Media",
}

// roleWeights maps role tags to the badge weight class the UI renders.
var roleWeights = map[Role]string{
	RoleManager:     "primary",
	RoleSocialMedia: "secondary",
}

// Label returns the display label for the role. Unknown tags pass through
// as their raw value so a stale record never breaks rendering.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Weight returns the badge weight class for the role, "muted" for unknown tags.
func (r Role) Weight() string {
	if weight, ok := roleWeights[r]; ok {
		return weight
	}
	return "muted"
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(32);not null"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
