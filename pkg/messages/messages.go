package messages

import (
	"fmt"
	"strings"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/match"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/openai"
)

// Service generates chat messages, asking the AI for a personalized
// variant and falling back to a static template when that fails.
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New("messages"),
	}
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("welcome", map[string]interface{}{
		"purpose": "Help people manage recipes and cook with what they have in their pantry",
	})
	if err != nil {
		s.logger.Error("Failed to generate welcome message: %v", err)
		return "👋 Welcome to PantryChef! I keep your recipes and your pantry, and tell you what you can cook tonight. Try /recipes, /pantry or /import."
	}
	return msg
}

// GeneratePantryContentsMessage generates a message listing the pantry
func (s *Service) GeneratePantryContentsMessage(items []models.PantryItem) string {
	names := make([]string, len(items))
	for i, item := range items {
		if item.Quantity != "" {
			names[i] = fmt.Sprintf("%s (%s)", item.Name, strings.TrimSpace(item.Quantity+" "+item.Unit))
		} else {
			names[i] = item.Name
		}
	}

	msg, err := s.openaiClient.GenerateChatMessage("pantry_contents", map[string]interface{}{
		"items": names,
	})
	if err != nil {
		s.logger.Error("Failed to generate pantry contents message: %v", err)
		var b strings.Builder
		b.WriteString("🧊 Here's what you have:\n\n")
		for _, name := range names {
			b.WriteString("• " + name + "\n")
		}
		return b.String()
	}
	return msg
}

// GenerateEmptyPantryMessage generates a message for an empty pantry
func (s *Service) GenerateEmptyPantryMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("empty_pantry", map[string]interface{}{})
	if err != nil {
		s.logger.Error("Failed to generate empty pantry message: %v", err)
		return "Your pantry is empty! Add items with /sync_pantry or by sending a photo of your fridge."
	}
	return msg
}

// FormatMatchReport renders a recipe's pantry coverage. This one is
// always static: the per-line checkmarks must be exact, not paraphrased.
func (s *Service) FormatMatchReport(title string, results []match.Result, summary match.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍳 %s — you have %d of %d ingredients (%d%%)\n\n", title, summary.HaveCount, summary.TotalCount, summary.MatchPercentage)

	for _, r := range results {
		if r.HasIt {
			mark := "✅"
			if r.Matched != nil {
				fmt.Fprintf(&b, "%s %s (have: %s)\n", mark, r.Ingredient, r.Matched.Name)
			} else {
				fmt.Fprintf(&b, "%s %s\n", mark, r.Ingredient)
			}
		} else {
			fmt.Fprintf(&b, "❌ %s\n", r.Ingredient)
		}
	}

	if summary.NeedCount > 0 {
		b.WriteString("\nUse /shop to turn the missing ingredients into a shopping list.")
	}
	return b.String()
}

// FormatShoppingList renders the shopping list
func (s *Service) FormatShoppingList(list *models.ShoppingList) string {
	if len(list.Items) == 0 {
		return "🛒 Your shopping list is empty."
	}

	var b strings.Builder
	if list.RecipeRef != "" {
		fmt.Fprintf(&b, "🛒 Shopping list for %s:\n\n", list.RecipeRef)
	} else {
		b.WriteString("🛒 Your shopping list:\n\n")
	}

	for _, item := range list.Items {
		if item.Purchased {
			fmt.Fprintf(&b, "✔ %s\n", item.Ingredient)
		} else {
			fmt.Fprintf(&b, "• %s\n", item.Ingredient)
		}
	}
	return b.String()
}

// GenerateImportConfirmation generates a message confirming an import
func (s *Service) GenerateImportConfirmation(recipe *models.Recipe) string {
	msg, err := s.openaiClient.GenerateChatMessage("import_confirmation", map[string]interface{}{
		"title":       recipe.Title,
		"cuisine":     recipe.Cuisine,
		"ingredients": len(recipe.Ingredients),
	})
	if err != nil {
		s.logger.Error("Failed to generate import confirmation: %v", err)
		return fmt.Sprintf("✅ Imported %s (%d ingredients). Use /match %s to check it against your pantry.", recipe.Title, len(recipe.Ingredients), recipe.Title)
	}
	return msg
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(context string) string {
	msg, err := s.openaiClient.GenerateChatMessage("error", map[string]interface{}{
		"context": context,
	})
	if err != nil {
		s.logger.Error("Failed to generate error message: %v", err)
		return "😢 Sorry, something went wrong. Please try again later."
	}
	return msg
}
