package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pantrychef/pantrychef/pkg/logger"
)

// Bot represents a Telegram bot instance
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// HandlerFunc is a function that handles a Telegram update
type HandlerFunc func(update tgbotapi.Update)

// CommandHandler is a function that handles a Telegram command
type CommandHandler func(message *tgbotapi.Message)

// CallbackHandler is a function that handles a Telegram callback query
type CallbackHandler func(callback *tgbotapi.CallbackQuery)

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// Start starts the bot and dispatches updates to the registered handlers.
// Callback handlers are matched by data prefix, commands by name.
func (b *Bot) Start(commandHandlers map[string]CommandHandler, callbackHandlers map[string]CallbackHandler, defaultHandler HandlerFunc) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil && update.Message.IsCommand() {
			command := update.Message.Command()
			if handler, ok := commandHandlers[command]; ok {
				b.logger.Info("Handling command: %s from user %s in chat %d", command, update.Message.From.UserName, update.Message.Chat.ID)
				handler(update.Message)
				continue
			}
		}

		if update.CallbackQuery != nil {
			data := update.CallbackQuery.Data
			for prefix, handler := range callbackHandlers {
				if strings.HasPrefix(data, prefix) {
					b.logger.Info("Handling callback: %s from user %s", data, update.CallbackQuery.From.UserName)
					handler(update.CallbackQuery)
					break
				}
			}
			continue
		}

		if defaultHandler != nil {
			defaultHandler(update)
		}
	}

	return nil
}

// SendMessage sends a text message to a chat
func (b *Bot) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.api.Send(msg)
}

// SendMessageWithKeyboard sends a text message with an inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return b.api.Send(msg)
}

// CreatePoll creates a non-anonymous poll in a chat
func (b *Bot) CreatePoll(chatID int64, question string, options []string) (tgbotapi.Message, error) {
	poll := tgbotapi.NewPoll(chatID, question, options...)
	poll.IsAnonymous = false
	return b.api.Send(poll)
}

// AnswerCallbackQuery answers a callback query
func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.api.Request(callback)
	return err
}

// EditMessage edits a message
func (b *Bot) EditMessage(chatID int64, messageID int, text string) (tgbotapi.Message, error) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	return b.api.Send(edit)
}

// PhotoURL returns a download URL for the largest size of a photo message
func (b *Bot) PhotoURL(message *tgbotapi.Message) (string, error) {
	if len(message.Photo) == 0 {
		return "", fmt.Errorf("message has no photo")
	}

	largest := message.Photo[len(message.Photo)-1]
	url, err := b.api.GetFileDirectURL(largest.FileID)
	if err != nil {
		return "", fmt.Errorf("failed to get photo URL: %w", err)
	}
	return url, nil
}

// Send sends a Chattable to Telegram
func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return b.api.Send(c)
}
