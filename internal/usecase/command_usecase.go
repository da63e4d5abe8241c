package usecase

import "context"

// CommandUsecase interprets inbound chat messages. Every message yields
// exactly one reply string; unrecognized input yields a fixed reply, never
// silence.
type CommandUsecase interface {
	// HandleMessage parses the message text and executes the matched
	// command on behalf of the sender.
	HandleMessage(ctx context.Context, sender string, text string) string
}
