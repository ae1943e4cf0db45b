package types

import (
	"time"

	"github.com/google/uuid"
)

type Domain struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Domain) TableName() string { return "domains" }

// DomainModule links a module into a domain's catalog. A module can be
// offered by any number of domains.
type DomainModule struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DomainID  uuid.UUID `gorm:"type:uuid;not null;index:idx_domain_module,unique" json:"domain_id"`
	Domain    *Domain   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DomainID;references:ID" json:"domain,omitempty"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index:idx_domain_module,unique" json:"module_id"`
	Module    *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DomainModule) TableName() string { return "domain_modules" }
