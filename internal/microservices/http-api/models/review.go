package models

import "time"

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	UserID     int64     `json:"user_id" gorm:"not null;index"`
	CocktailID int64     `json:"cocktail_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Cocktail *Cocktail `json:"cocktail,omitempty" gorm:"foreignKey:CocktailID"`
}

func (Review) TableName() string {
	return "reviews"
}
