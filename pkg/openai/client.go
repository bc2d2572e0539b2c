package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/models"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New("openai"),
	}
}

// importedRecipe is the JSON shape the import prompt asks for
type importedRecipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Cuisine      string   `json:"cuisine"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     int      `json:"servings"`
}

// ImportRecipe turns pasted free-form recipe text (or a recipe from a web
// page) into a structured Recipe. Ingredient lines are kept verbatim so
// the local parser stays the single source of truth for amounts.
func (c *Client) ImportRecipe(text string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Extract a structured recipe from the following text.
Keep every ingredient line exactly as written, including quantities.
Return the recipe in the following JSON format:
{
  "title": "Recipe title",
  "description": "Brief description",
  "cuisine": "Cuisine type",
  "tags": ["tag1", "tag2", ...],
  "ingredients": ["2 cups flour", "3 eggs", ...],
  "instructions": ["step1", "step2", ...],
  "servings": 4
}
Only return the JSON, no other text.

Text:
%s
`, text)

	c.logger.Info("Importing recipe from text (%d chars)", len(text))
	c.logger.Debug("Import prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a cooking expert who extracts accurate, structured recipes from messy text.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	var imported importedRecipe
	if err := json.Unmarshal([]byte(content), &imported); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if imported.Title == "" || len(imported.Ingredients) == 0 {
		return nil, fmt.Errorf("imported recipe is missing a title or ingredients")
	}

	recipe := &models.Recipe{
		Title:        imported.Title,
		Description:  imported.Description,
		Cuisine:      imported.Cuisine,
		Tags:         imported.Tags,
		Ingredients:  imported.Ingredients,
		Instructions: imported.Instructions,
		Servings:     imported.Servings,
		Source:       "import",
	}

	c.logger.Info("Successfully imported recipe: %s (%d ingredients)", recipe.Title, len(recipe.Ingredients))
	return recipe, nil
}

// SuggestTags asks the model for tags describing a recipe
func (c *Client) SuggestTags(recipe *models.Recipe) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking assistant. Suggest up to 5 short tags for the recipe below
(diet, course, season, main ingredient, cooking method).
Return only a JSON array of lowercase tag strings, no other text.
For example: ["vegetarian", "dinner", "pasta"]

Title: %s
Cuisine: %s
Ingredients: %s
`, recipe.Title, recipe.Cuisine, strings.Join(recipe.Ingredients, "; "))

	c.logger.Info("Requesting tags for recipe: %s", recipe.Title)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var tags []string
	if err := json.Unmarshal([]byte(content), &tags); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	return tags, nil
}

// ExtractItemsFromPhoto extracts pantry items from a photo of a fridge,
// pantry shelf or grocery haul
func (c *Client) ExtractItemsFromPhoto(photoURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := `You are a computer vision expert. Look at the image of a fridge, pantry or groceries and list all visible food items.
Be thorough and try to identify as many food items as possible.
Return only a JSON array of item names, no other text.
For example: ["eggs", "milk", "tomatoes", "chicken breast"]
`

	c.logger.Info("Extracting pantry items from photo")
	c.logger.Debug("Photo URL (truncated): %s", truncateString(photoURL, 50))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: prompt,
				},
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: "What food items do you see in this image? List all of them in a JSON array.",
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: photoURL,
							},
						},
					},
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		c.logger.Error("OpenAI API error: %v", err)
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	var items []string
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)

		// Try to extract items using a more lenient approach
		extracted := extractItemsFromText(content)
		if len(extracted) > 0 {
			c.logger.Info("Extracted %d items using fallback method", len(extracted))
			return extracted, nil
		}

		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Info("Successfully extracted %d items from photo", len(items))
	return items, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly cooking assistant bot for a Telegram chat. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// SuggestSubstitutes asks for substitutes for a single missing ingredient,
// given what the chat has on hand
func (c *Client) SuggestSubstitutes(ingredient string, available []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Suggest up to 3 practical substitutes for the ingredient "%s".
Prefer substitutes from this list of items on hand: %s.
Return only a JSON array of substitute names, no other text.
`, ingredient, strings.Join(available, ", "))

	c.logger.Info("Requesting substitutes for: %s", ingredient)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.4,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var substitutes []string
	if err := json.Unmarshal([]byte(content), &substitutes); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	return substitutes, nil
}

// Helper functions

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// cleanJSONResponse cleans up the JSON response from OpenAI
// Sometimes the model returns markdown code blocks with ```json and ``` delimiters
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Skip the first line (which might contain "```json")
		firstLineEnd := strings.Index(s, "\n")
		if firstLineEnd != -1 {
			s = s[firstLineEnd+1:]
		}

		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}

		s = strings.TrimSpace(s)
	}

	return s
}

// extractItemsFromText extracts item names from text using a simple heuristic.
// This is a fallback method when JSON parsing fails.
func extractItemsFromText(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '"' || r == '[' || r == ']' || r == '\t'
	})

	var items []string
	for _, word := range words {
		word = strings.TrimSpace(word)
		if len(word) <= 1 {
			continue
		}
		if word == "null" || word == "true" || word == "false" {
			continue
		}
		// Skip if it starts with a number (likely part of JSON syntax)
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}

		items = append(items, word)
	}

	return items
}
