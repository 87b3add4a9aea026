package models

// User is a registered API user. Rows are created by seeding only.
type User struct {
	UserID      int    `gorm:"primaryKey;autoIncrement" json:"userId"`
	Firstname   string `gorm:"size:100;not null" json:"firstname"`
	Lastname    string `gorm:"size:100;not null" json:"lastname"`
	Username    string `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password    string `gorm:"not null" json:"-"`
	AccessLevel int    `gorm:"not null;default:1" json:"accesslevel"`
}
