package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleHeadOfFamily = "HEAD_OF_FAMILY"
	RoleDoctor       = "DOCTOR"
	RoleAdmin        = "ADMIN"
)

// User represents any account in the system: family head, doctor, or admin
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:100;not null;column:name" json:"name"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:30;check:role IN ('HEAD_OF_FAMILY', 'DOCTOR', 'ADMIN');not null;index;column:role" json:"role"`
	Verified  bool      `gorm:"not null;default:false;column:verified" json:"verified"`
	Locked    bool      `gorm:"not null;default:false;column:locked" json:"locked"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	return role == RoleHeadOfFamily || role == RoleDoctor || role == RoleAdmin
}

// SeedAdminUser inserts the initial admin account into the database.
// The password hash must be supplied by the caller.
func SeedAdminUser(db *gorm.DB, email, passwordHash string) error {
	admin := User{
		Name:     "System Administrator",
		Email:    email,
		Password: passwordHash,
		Role:     RoleAdmin,
		Verified: true,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.FirstOrCreate(&admin, User{Email: admin.Email}).Error
	})
}
