package models

type Ingredient struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
