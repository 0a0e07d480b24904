package models

// User is the identity record: the thing credentials authenticate against.
// Profile data lives separately in profiles, keyed by the same ID.
type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name"`

	// Self-service sign-ups start unconfirmed and cannot sign in until an
	// admin confirms them. Admin-created accounts are confirmed immediately.
	Confirmed bool `gorm:"default:false" json:"confirmed"`
}

func (User) TableName() string {
	return "users"
}
