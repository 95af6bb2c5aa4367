package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;size:120" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Reviews []Review `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

func (User) TableName() string {
	return "users"
}
