package models

import (
	"time"
)

// PantryItem represents a single item a chat has on hand
type PantryItem struct {
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Pantry represents the inventory of a chat
type Pantry struct {
	ID          string                `json:"id"`
	ChatID      int64                 `json:"chat_id"`
	Items       map[string]PantryItem `json:"items"`
	LastUpdated time.Time             `json:"last_updated"`
}

// Recipe represents a stored recipe
type Recipe struct {
	ID           string    `json:"id"`
	ChatID       int64     `json:"chat_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Cuisine      string    `json:"cuisine,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Ingredients  []string  `json:"ingredients"` // free-text lines, e.g. "2 cups flour"
	Instructions []string  `json:"instructions,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	Source       string    `json:"source,omitempty"` // "manual", "import" or a URL
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShoppingItem is a single line on a shopping list
type ShoppingItem struct {
	Ingredient string `json:"ingredient"`
	Purchased  bool   `json:"purchased"`
}

// ShoppingList represents the shopping list of a chat, usually built from
// the missing ingredients of a recipe match
type ShoppingList struct {
	ID        string         `json:"id"`
	ChatID    int64          `json:"chat_id"`
	RecipeRef string         `json:"recipe_ref,omitempty"` // title of the recipe that produced the list
	Items     []ShoppingItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RecipeStat tracks how often a recipe was cooked and how it was rated
type RecipeStat struct {
	RecipeID    string  `json:"recipe_id"`
	Title       string  `json:"title"`
	CookCount   int     `json:"cook_count"`
	TotalRating float64 `json:"total_rating"`
	AvgRating   float64 `json:"avg_rating"`
}

// Statistics represents the usage statistics for a chat
type Statistics struct {
	ChatID      int64                 `json:"chat_id"`
	RecipeStats map[string]RecipeStat `json:"recipe_stats"` // RecipeID -> RecipeStat
}

// VoteState represents the state of a "what should we cook tonight" poll
type VoteState struct {
	PollID        string            `json:"poll_id"`
	MessageID     int               `json:"message_id"`
	Options       []string          `json:"options"` // recipe titles
	Votes         map[string]string `json:"votes"`   // UserID -> Option
	StartedAt     time.Time         `json:"started_at"`
	EndedAt       time.Time         `json:"ended_at,omitempty"`
	WinningRecipe string            `json:"winning_recipe,omitempty"`
}
