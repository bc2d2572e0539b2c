package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pantrychef/pantrychef/pkg/config"
	"github.com/pantrychef/pantrychef/pkg/ingredient"
	"github.com/pantrychef/pantrychef/pkg/logger"
	"github.com/pantrychef/pantrychef/pkg/match"
	"github.com/pantrychef/pantrychef/pkg/messages"
	"github.com/pantrychef/pantrychef/pkg/models"
	"github.com/pantrychef/pantrychef/pkg/openai"
	"github.com/pantrychef/pantrychef/pkg/pantry"
	"github.com/pantrychef/pantrychef/pkg/recipes"
	"github.com/pantrychef/pantrychef/pkg/scheduler"
	"github.com/pantrychef/pantrychef/pkg/shopping"
	"github.com/pantrychef/pantrychef/pkg/state"
	"github.com/pantrychef/pantrychef/pkg/stats"
	"github.com/pantrychef/pantrychef/pkg/storage"
	"github.com/pantrychef/pantrychef/pkg/telegram"
	"github.com/pantrychef/pantrychef/pkg/vote"
)

func main() {
	log := logger.Global
	log.Info("Starting PantryChef bot...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	store.StartGCRoutine(10 * time.Minute)

	aiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	pantryService := pantry.New(store)
	recipeService := recipes.New(store, aiClient)
	shoppingService := shopping.New(store, pantryService)
	statsService := stats.New(store)
	voteService := vote.New(store)
	messageService := messages.New(aiClient)
	stateManager := state.New()

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	digest := scheduler.New(store, bot, pantryService, recipeService, cfg.SuggestHour)
	digest.Start()
	defer digest.Stop()

	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messageService.GenerateWelcomeMessage())
		},
		"pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve pantry contents"))
				return
			}

			if len(items) == 0 {
				bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
				return
			}

			bot.SendMessage(chatID, messageService.GeneratePantryContentsMessage(items))
		},
		"sync_pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			if err := pantryService.Reset(chatID); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("reset pantry"))
				return
			}

			stateManager.SetState(chatID, state.StateAddingItems)
			bot.SendMessage(chatID, "🧹 Pantry reset! Now send me what you have, one item per line or comma-separated. A photo of your fridge works too.")
		},
		"additem": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			line := strings.TrimSpace(message.CommandArguments())
			if line == "" {
				bot.SendMessage(chatID, "Usage: /additem <item>, e.g. /additem 2 cups flour")
				return
			}

			parsed := ingredient.Parse(line)
			if err := pantryService.AddItem(chatID, parsed.Core, parsed.Amount, ""); err != nil {
				log.Error("Failed to add item: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("add the item"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("✅ Added %s to your pantry.", parsed.Core))
		},
		"remove": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /remove <item name>")
				return
			}

			if err := pantryService.RemoveItem(chatID, name); err != nil {
				log.Error("Failed to remove item: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("remove item"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("✅ Removed %s from your pantry.", name))
		},
		"recipes": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			tag := strings.TrimSpace(message.CommandArguments())

			var found []models.Recipe
			var err error
			if tag == "" {
				found, err = recipeService.List(chatID)
			} else {
				found, err = recipeService.ListByTag(chatID, tag)
			}
			if err != nil {
				log.Error("Failed to list recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("list recipes"))
				return
			}

			if len(found) == 0 {
				if tag != "" {
					bot.SendMessage(chatID, fmt.Sprintf("📖 No recipes tagged %q. Use /recipes to see everything.", tag))
					return
				}
				bot.SendMessage(chatID, "📖 Your recipe book is empty. Use /import to add a recipe from pasted text.")
				return
			}

			lines := make([]string, len(found))
			for i, r := range found {
				lines[i] = formatRecipeLine(r.Title, r.Cuisine, r.Tags)
			}
			bot.SendMessage(chatID, "📖 Your recipes:\n\n"+strings.Join(lines, "\n"))
		},
		"recipe": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /recipe <title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			bot.SendMessage(chatID, formatRecipe(recipe))
		},
		"import": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			stateManager.SetState(chatID, state.StateImportingRecipe)
			bot.SendMessage(chatID, "📋 Paste the recipe text (from a website, a book, anywhere) and I'll add it to your book.")
		},
		"match": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /match <recipe title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check your pantry"))
				return
			}

			results := match.Match(recipe.Ingredients, items)
			summary := match.Summarize(results)
			bot.SendMessage(chatID, messageService.FormatMatchReport(recipe.Title, results, summary))
		},
		"subs": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /subs <recipe title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check your pantry"))
				return
			}

			subs, err := recipeService.Substitutions(recipe, items)
			if err != nil {
				log.Error("Failed to get substitutions: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("find substitutes"))
				return
			}
			if len(subs) == 0 {
				bot.SendMessage(chatID, fmt.Sprintf("🎉 Nothing to substitute. You have everything for %s!", recipe.Title))
				return
			}

			var b strings.Builder
			fmt.Fprintf(&b, "🔄 Substitutes for %s:\n\n", recipe.Title)
			for _, sub := range subs {
				fmt.Fprintf(&b, "• %s → %s\n", sub.Ingredient, strings.Join(sub.Substitutes, ", "))
			}
			bot.SendMessage(chatID, b.String())
		},
		"tag": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /tag <recipe title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			tags, err := recipeService.AutoTag(recipe.ID)
			if err != nil {
				log.Error("Failed to auto-tag recipe: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("tag the recipe"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🏷 Tagged %s: %s", recipe.Title, strings.Join(tags, ", ")))
		},
		"forget": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /forget <recipe title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			if err := recipeService.Delete(recipe.ID); err != nil {
				log.Error("Failed to delete recipe: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("delete the recipe"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🗑 Removed %s from your recipe book.", recipe.Title))
		},
		"shop": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /shop <recipe title>")
				return
			}

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check your pantry"))
				return
			}

			missing := match.Missing(match.Match(recipe.Ingredients, items))
			if len(missing) == 0 {
				bot.SendMessage(chatID, fmt.Sprintf("🎉 You already have everything for %s!", recipe.Title))
				return
			}

			list, err := shoppingService.Build(chatID, recipe.Title, missing)
			if err != nil {
				log.Error("Failed to build shopping list: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("build the shopping list"))
				return
			}

			bot.SendMessage(chatID, messageService.FormatShoppingList(list))
		},
		"shoplist": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			list, err := shoppingService.Get(chatID)
			if err != nil {
				log.Error("Failed to get shopping list: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve the shopping list"))
				return
			}
			bot.SendMessage(chatID, messageService.FormatShoppingList(list))
		},
		"bought": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			query := strings.TrimSpace(message.CommandArguments())
			if query == "" {
				bot.SendMessage(chatID, "Usage: /bought <item>")
				return
			}

			item, err := shoppingService.MarkPurchased(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 Nothing on your list matches %q.", query))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("✔ Marked %s as purchased. Use /checkout to move purchases into your pantry.", item.Ingredient))
		},
		"checkout": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			n, err := shoppingService.CommitPurchased(chatID)
			if err != nil {
				log.Error("Failed to commit purchases: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("update your pantry"))
				return
			}
			if n == 0 {
				bot.SendMessage(chatID, "Nothing is marked as purchased yet. Use /bought <item> first.")
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🧊 Moved %d purchased items into your pantry.", n))
		},
		"clearshop": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			if err := shoppingService.Clear(chatID); err != nil {
				log.Error("Failed to clear shopping list: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("clear the shopping list"))
				return
			}
			bot.SendMessage(chatID, "🛒 Shopping list cleared.")
		},
		"tonight": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			all, err := recipeService.List(chatID)
			if err != nil || len(all) == 0 {
				bot.SendMessage(chatID, "📖 Your recipe book is empty. Use /import to add recipes first.")
				return
			}

			items, err := pantryService.ListItems(chatID)
			if err != nil {
				log.Error("Failed to list pantry items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("check your pantry"))
				return
			}

			ranked := recipes.RankByPantry(all, items, 3)
			options := make([]string, 0, len(ranked))
			for _, r := range ranked {
				options = append(options, r.Recipe.Title)
			}
			if len(options) < 2 {
				bot.SendMessage(chatID, "I need at least two recipes to run a poll. Add more with /import.")
				return
			}

			pollMsg, err := bot.CreatePoll(chatID, "What should we cook tonight?", options)
			if err != nil {
				log.Error("Failed to create poll: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("create the poll"))
				return
			}

			pollID := fmt.Sprintf("%d", pollMsg.MessageID)
			if pollMsg.Poll != nil {
				pollID = pollMsg.Poll.ID
			}
			if _, err := voteService.CreateVote(chatID, pollID, pollMsg.MessageID, options); err != nil {
				log.Error("Failed to create vote state: %v", err)
			}
		},
		"winner": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			pollID, err := voteService.Current(chatID)
			if err != nil {
				bot.SendMessage(chatID, "There's no active poll. Start one with /tonight.")
				return
			}

			winner, err := voteService.EndVote(chatID, pollID)
			if err != nil {
				log.Error("Failed to end vote: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("close the poll"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("🏆 %s wins! Use /match %s to see what you still need.", winner, winner))
		},
		"cooked": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			args := strings.Fields(message.CommandArguments())
			if len(args) == 0 {
				bot.SendMessage(chatID, "Usage: /cooked <recipe title> [rating 1-5]")
				return
			}

			rating := 0
			if n, err := strconv.Atoi(args[len(args)-1]); err == nil && n >= 1 && n <= 5 {
				rating = n
				args = args[:len(args)-1]
			}
			query := strings.Join(args, " ")

			recipe, err := recipeService.FindByTitle(chatID, query)
			if err != nil {
				bot.SendMessage(chatID, fmt.Sprintf("🤷 I couldn't find a recipe matching %q.", query))
				return
			}

			if err := statsService.RecordCooked(chatID, recipe.ID, recipe.Title, rating); err != nil {
				log.Error("Failed to record cook: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("record the meal"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("👨‍🍳 Logged %s. Bon appétit!", recipe.Title))
		},
		"top": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			top, err := statsService.TopRecipes(chatID, 5)
			if err != nil {
				log.Error("Failed to get top recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("retrieve statistics"))
				return
			}
			if len(top) == 0 {
				bot.SendMessage(chatID, "No meals logged yet. Use /cooked after cooking something.")
				return
			}

			var b strings.Builder
			b.WriteString("🏅 Your most cooked recipes:\n\n")
			for i, stat := range top {
				fmt.Fprintf(&b, "%d. %s — cooked %d times", i+1, stat.Title, stat.CookCount)
				if stat.AvgRating > 0 {
					fmt.Fprintf(&b, ", rated %.1f", stat.AvgRating)
				}
				b.WriteString("\n")
			}
			bot.SendMessage(chatID, b.String())
		},
	}

	callbackHandlers := map[string]telegram.CallbackHandler{
		"done_adding": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			stateManager.ClearState(chatID)
			bot.AnswerCallbackQuery(callback.ID, "Thanks! Your pantry is now updated.")
			bot.EditMessage(chatID, callback.Message.MessageID, "✅ Pantry update complete! Use /pantry to review it or /tonight for dinner ideas.")
		},
		"add_more": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			bot.AnswerCallbackQuery(callback.ID, "Please send more items!")
			bot.EditMessage(chatID, callback.Message.MessageID, "Please send more items. I'll add them to your pantry.")
		},
	}

	defaultHandler := func(update tgbotapi.Update) {
		// Poll answers feed the vote state
		if update.PollAnswer != nil {
			pollID := update.PollAnswer.PollID
			chatID, err := voteService.ChatForPoll(pollID)
			if err != nil {
				return
			}
			if len(update.PollAnswer.OptionIDs) == 0 {
				return
			}
			userID := fmt.Sprintf("%d", update.PollAnswer.User.ID)
			if err := voteService.RecordVote(chatID, pollID, userID, update.PollAnswer.OptionIDs[0]); err != nil {
				log.Error("Failed to record vote: %v", err)
			}
			return
		}

		if update.Message == nil {
			return
		}
		chatID := update.Message.Chat.ID

		// Fridge photos work in any state
		if len(update.Message.Photo) > 0 {
			url, err := bot.PhotoURL(update.Message)
			if err != nil {
				log.Error("Failed to get photo URL: %v", err)
				return
			}

			items, err := aiClient.ExtractItemsFromPhoto(url)
			if err != nil {
				log.Error("Failed to extract items from photo: %v", err)
				bot.SendMessage(chatID, "😢 Sorry, I couldn't read that photo. Try listing the items as text.")
				return
			}
			if len(items) == 0 {
				bot.SendMessage(chatID, "I couldn't spot any food in that photo.")
				return
			}

			if err := pantryService.AddItems(chatID, items); err != nil {
				log.Error("Failed to add items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("update your pantry"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("✅ Added %d items from the photo: %s", len(items), strings.Join(items, ", ")))
			return
		}

		if update.Message.Text == "" || update.Message.IsCommand() {
			return
		}
		text := update.Message.Text

		switch stateManager.GetState(chatID) {
		case state.StateAddingItems:
			names := splitItems(text)
			if len(names) == 0 {
				bot.SendMessage(chatID, "I couldn't find any items in your message. Please send a list like: eggs, milk, 2 cups flour")
				return
			}

			if err := pantryService.AddItems(chatID, names); err != nil {
				log.Error("Failed to add items: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("update your pantry"))
				return
			}

			bot.SendMessage(chatID, fmt.Sprintf("✅ Added %d items to your pantry: %s", len(names), strings.Join(names, ", ")))

			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Done adding items", "done_adding"),
					tgbotapi.NewInlineKeyboardButtonData("Add more", "add_more"),
				),
			)
			bot.SendMessageWithKeyboard(chatID, "Would you like to add more items or are you done?", keyboard)

		case state.StateImportingRecipe:
			recipe, err := aiClient.ImportRecipe(text)
			if err != nil {
				log.Error("Failed to import recipe: %v", err)
				bot.SendMessage(chatID, "😢 Sorry, I couldn't make sense of that recipe. Please try again with the full text.")
				return
			}

			created, err := recipeService.Create(chatID, *recipe)
			if err != nil {
				log.Error("Failed to save recipe: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("save the recipe"))
				return
			}
			stateManager.ClearState(chatID)

			if len(created.Tags) == 0 {
				if tags, err := recipeService.AutoTag(created.ID); err == nil {
					created.Tags = tags
				}
			}

			bot.SendMessage(chatID, messageService.GenerateImportConfirmation(created))
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		digest.Stop()
		store.Close()
		os.Exit(0)
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}

// splitItems turns a pasted list into pantry item names. Lines and
// commas both separate items; each piece goes through the ingredient
// parser so "2 cups flour" lands as "flour".
func splitItems(text string) []string {
	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ','
	})

	var names []string
	for _, piece := range pieces {
		core := ingredient.Parse(piece).Core
		if core == "" {
			continue
		}
		names = append(names, core)
	}
	return names
}

// formatRecipeLine renders one row of the /recipes listing
func formatRecipeLine(title, cuisine string, tags []string) string {
	line := "• " + title
	if cuisine != "" {
		line += " (" + cuisine + ")"
	}
	if len(tags) > 0 {
		line += " — " + strings.Join(tags, ", ")
	}
	return line
}

// formatRecipe renders the full recipe view
func formatRecipe(recipe *models.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ %s\n", recipe.Title)
	if recipe.Cuisine != "" {
		fmt.Fprintf(&b, "Cuisine: %s\n", recipe.Cuisine)
	}
	if recipe.Servings > 0 {
		fmt.Fprintf(&b, "Servings: %d\n", recipe.Servings)
	}
	if len(recipe.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(recipe.Tags, ", "))
	}
	if recipe.Description != "" {
		b.WriteString("\n" + recipe.Description + "\n")
	}

	b.WriteString("\nIngredients:\n")
	for _, line := range recipe.Ingredients {
		b.WriteString("• " + line + "\n")
	}

	if len(recipe.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, step := range recipe.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	return b.String()
}
