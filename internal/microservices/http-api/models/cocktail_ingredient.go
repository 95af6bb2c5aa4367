package models

// explicit join model: the amount lives on the link, keyed by (cocktail_id, ingredient_id)
type CocktailIngredient struct {
	CocktailID   int64  `json:"cocktail_id" gorm:"primaryKey;autoIncrement:false"`
	IngredientID int64  `json:"ingredient_id" gorm:"primaryKey;autoIncrement:false;index"`
	Amount       string `json:"amount" gorm:"size:50"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

func (CocktailIngredient) TableName() string {
	return "cocktail_ingredients"
}
