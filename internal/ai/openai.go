package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// intentSchema is generated once from the Intent struct so the model is
// forced into the exact shape InterpretCommand unmarshals.
var intentSchema = func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&Intent{})
}()

type OpenAI struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAI(apiKey, baseURL, model string, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAI) InterpretCommand(ctx context.Context, text string) (*Intent, error) {
	o.logger.Debug("classifying command", "model", o.model, "text_len", len(text))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(text)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "intent",
					Schema: intentSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("requesting completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	var intent Intent
	content := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return nil, fmt.Errorf("parsing intent: %w", err)
	}

	o.logger.Debug("classified command",
		"command", intent.Command, "params", intent.Params, "confidence", intent.Confidence)
	return &intent, nil
}
