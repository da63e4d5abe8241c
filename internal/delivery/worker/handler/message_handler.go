// Package handler contains the echo handlers of the message server.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"capwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// InboundMessage is one chat message delivered by the chat integration.
type InboundMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// OutboundReply is the bot's reply to an inbound message.
type OutboundReply struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// MessageHandler accepts inbound chat messages and runs them through the
// command interpreter.
type MessageHandler struct {
	logger   *slog.Logger
	commands usecase.CommandUsecase
}

// MessageHandlerParams holds dependencies for the MessageHandler
type MessageHandlerParams struct {
	fx.In

	Logger   *slog.Logger
	Commands usecase.CommandUsecase
}

// NewMessageHandler creates the inbound message handler.
func NewMessageHandler(params MessageHandlerParams) *MessageHandler {
	return &MessageHandler{
		logger:   params.Logger,
		commands: params.Commands,
	}
}

// HandleMessage interprets one inbound message and returns the reply. Every
// message gets a reply; an unrecognized command yields the standard
// not-understood text, never an empty response.
func (h *MessageHandler) HandleMessage(c echo.Context) error {
	var msg InboundMessage
	if err := c.Bind(&msg); err != nil {
		h.logger.Warn("failed to parse inbound message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	if strings.TrimSpace(msg.Sender) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sender is required"})
	}

	reply := h.commands.HandleMessage(c.Request().Context(), msg.Sender, msg.Text)

	return c.JSON(http.StatusOK, OutboundReply{
		Recipient: msg.Sender,
		Text:      reply,
	})
}
