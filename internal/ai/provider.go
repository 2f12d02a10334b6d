// Package ai maps free-form message text onto the bot's fixed command
// grammar. It is an optional fallback: exact commands never go through it.
package ai

import "context"

// Intent is the structured classification of one message.
type Intent struct {
	// Command is one of the bot's literal commands: "entrada", "saída",
	// "relatório", or "desconhecido" when nothing fits.
	Command string `json:"command" jsonschema:"enum=entrada,enum=saída,enum=relatório,enum=desconhecido"`
	// Params is the report range text in the bot grammar, empty otherwise.
	Params string `json:"params"`
	// Confidence is the model's self-assessed match quality in [0, 1].
	Confidence float64 `json:"confidence"`
}

type Provider interface {
	InterpretCommand(ctx context.Context, text string) (*Intent, error)
}
