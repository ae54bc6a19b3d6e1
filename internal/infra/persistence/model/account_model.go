// Package model holds the GORM persistence models. They mirror the database tables
// and are mapped to domain entities by the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'venders' table.
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string     `gorm:"type:varchar(255);not null;index"`
	PasswordHash string     `gorm:"column:password;type:varchar(255);not null"`
	RefreshToken *string    `gorm:"type:text"`
	MobileNo     string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	AltMobileNo  string     `gorm:"type:varchar(32)"`
	BusinessName string     `gorm:"type:varchar(255)"`
	OwnerName    string     `gorm:"type:varchar(255)"`
	Address      string     `gorm:"type:text"`
	Latitude     *float64   `gorm:"type:double precision"`
	Longitude    *float64   `gorm:"type:double precision"`
	FCMToken     string     `gorm:"column:fcm_token;type:text"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index"`
	Avatar       string     `gorm:"type:text;not null"`
	CoverImage   string     `gorm:"type:text"`
	Status       bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "venders"
}
