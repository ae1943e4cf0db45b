package types

import (
	"time"

	"github.com/google/uuid"
)

// UserDomain is the enrollment scope: every module action resolves through a
// (user, domain) pair, never through the user id alone.
type UserDomain struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_domain,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DomainID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_domain,unique" json:"domain_id"`
	Domain    *Domain   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DomainID;references:ID" json:"domain,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserDomain) TableName() string { return "user_domains" }
