package models

import "time"

type Cocktail struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	ImageURL     string    `json:"image_url" gorm:"column:image_url;size:255"`
	Instructions string    `json:"instructions" gorm:"type:text"`
	GlassType    string    `json:"glass_type" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Ingredients []CocktailIngredient `json:"ingredients,omitempty" gorm:"foreignKey:CocktailID"`
	Reviews     []Review             `json:"reviews,omitempty" gorm:"foreignKey:CocktailID"`
}

func (Cocktail) TableName() string {
	return "cocktails"
}
