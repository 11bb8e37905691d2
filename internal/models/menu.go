package models

import "fmt"

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement"`
	Cost        float64 `json:"cost"`
}

// RecipeData is the nested payload of a recipe or menu entry. Type
// discriminates between the two ("Menu" or "Recipe").
type RecipeData struct {
	RecipeName          string       `json:"recipe_name"`
	Servings            float64      `json:"servings"`
	ItemsPerServing     float64      `json:"items_per_serving"`
	ServingSize         *string      `json:"serving_size"`
	TotalYield          *string      `json:"total_yield"`
	Ingredients         []Ingredient `json:"ingredients"`
	TotalCost           float64      `json:"total_cost"`
	CostPerServing      float64      `json:"cost_per_serving"`
	Type                string       `json:"Type"`
	SizeName            string       `json:"Size_Name,omitempty"`
	Category            string       `json:"category"`
	MenuPrice           float64      `json:"Menu_Price,omitempty"`
	TotalCostPercentage float64      `json:"Total_cost_percentage"`
	GrossProfit         float64      `json:"Gross_Profit"`
	GrossProfitPct      float64      `json:"Gross_Profit_percentage"`
	Method              string       `json:"method,omitempty"`
}

// Recipe is one appended entry in a menu document. SequenceNumber is the
// value of the document's recipe_count at the time of the append.
type Recipe struct {
	ID             string     `json:"id"`
	SequenceNumber int        `json:"sequence_number"`
	Name           string     `json:"name"`
	CreatedAt      string     `json:"created_at"`
	Data           RecipeData `json:"data"`
}

// MenuDocument is the single menu/recipe document for one user, id = email.
// Recipes are grouped under a per-user collection key (see RecipeKey).
// RecipeCount is strictly increasing: it counts every recipe ever appended.
type MenuDocument struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	RecipeCount int                 `json:"recipe_count"`
	Recipes     map[string][]Recipe `json:"recipes"`
	LastUpdated string              `json:"last_updated"`
}

// RecipeKey returns the collection key recipes are stored under for a user.
func RecipeKey(email string) string {
	return fmt.Sprintf("inventory-items-%s", email)
}

// RecipeID derives the id for the nth recipe appended by a user.
func RecipeID(email string, sequence int) string {
	return fmt.Sprintf("%s_%s_%d", email, RecipeKey(email), sequence)
}

// NewMenuDocument synthesizes an empty menu document for a user. It is not
// persisted until the first mutation.
func NewMenuDocument(email string) *MenuDocument {
	return &MenuDocument{
		ID:      email,
		Type:    "user",
		Recipes: map[string][]Recipe{},
	}
}
