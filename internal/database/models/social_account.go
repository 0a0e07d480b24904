package models

// SocialAccount is a team-managed presence on a platform. The app only
// lists these; rows are seeded and maintained out of band. Platform is
// free-form and matched against the known set for display styling only.
type SocialAccount struct {
	Base
	Platform string `gorm:"not null" json:"platform"`
	Username string `gorm:"not null" json:"username"`
	URL      string `gorm:"not null" json:"url"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
