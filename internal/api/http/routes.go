// Package httpapi exposes the webhook endpoint the Bot API pushes updates
// to.
package httpapi

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/bot"
)

var validate = validator.New()

// update is the subset of a Bot API update the bot cares about.
type update struct {
	UpdateID int64 `json:"update_id" validate:"required"`
	Message  *struct {
		MessageID int64  `json:"message_id"`
		Text      string `json:"text"`
		Date      int64  `json:"date"`
		Chat      struct {
			ID        int64  `json:"id" validate:"required"`
			FirstName string `json:"first_name"`
		} `json:"chat"`
		From struct {
			FirstName    string `json:"first_name"`
			LanguageCode string `json:"language_code"`
		} `json:"from"`
	} `json:"message"`
}

// Handler produces the reply for one inbound message.
type Handler interface {
	Handle(ctx context.Context, msg bot.Message) string
}

// Sender delivers a reply back to the chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// RegisterRoutes wires the webhook handlers into the Fiber app. The webhook
// path embeds the bot token, which is the standard way to keep strangers
// from posting fake updates.
func RegisterRoutes(app *fiber.App, token string, handler Handler, sender Sender, log zerolog.Logger) {
	log = log.With().Str("component", "http").Logger()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherbot",
		})
	})

	app.Post("/webhook/:token", func(c *fiber.Ctx) error {
		if c.Params("token") != token {
			return fiber.NewError(fiber.StatusNotFound, "not found")
		}

		var upd update
		if err := c.BodyParser(&upd); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed update")
		}
		if err := validate.Struct(upd); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Updates without a text message (edits, stickers, joins) are
		// acknowledged and dropped.
		if upd.Message == nil || upd.Message.Text == "" {
			return c.SendString("ok")
		}

		msg := bot.Message{
			ChatID:       upd.Message.Chat.ID,
			Text:         upd.Message.Text,
			Username:     upd.Message.From.FirstName,
			LanguageCode: upd.Message.From.LanguageCode,
			Timestamp:    time.Unix(upd.Message.Date, 0),
		}

		reply := handler.Handle(c.Context(), msg)
		if reply == "" {
			return c.SendString("ok")
		}

		if err := sender.SendMessage(c.Context(), msg.ChatID, reply); err != nil {
			// The update is still acknowledged: the Bot API would otherwise
			// redeliver it and the user would get duplicate replies later.
			log.Warn().Err(err).Int64("chat_id", msg.ChatID).Msg("reply delivery failed")
		}
		return c.SendString("ok")
	})
}
