package core

// Ingredient is one burger layer the player can place
type Ingredient int8

const (
	IngredientTomato Ingredient = iota
	IngredientLettuce
	IngredientCheese
	IngredientPatty
	IngredientCount
)

// IngredientUnknown is never part of an order; submitting it counts as a mismatch
const IngredientUnknown Ingredient = -1

var ingredientNames = [IngredientCount]string{
	IngredientTomato:  "tomato",
	IngredientLettuce: "lettuce",
	IngredientCheese:  "cheese",
	IngredientPatty:   "patty",
}

func (i Ingredient) String() string {
	if i.Valid() {
		return ingredientNames[i]
	}
	return "unknown"
}

// Valid reports whether i is one of the four ingredients
func (i Ingredient) Valid() bool {
	return i >= 0 && i < IngredientCount
}

// ParseIngredient maps a symbol name to an ingredient, IngredientUnknown if unrecognized
func ParseIngredient(name string) Ingredient {
	for i, n := range ingredientNames {
		if n == name {
			return Ingredient(i)
		}
	}
	return IngredientUnknown
}
