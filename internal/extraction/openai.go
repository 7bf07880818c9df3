package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const extractionPrompt = `You are reading a restaurant receipt. Extract its contents as JSON with this exact shape:
{
  "items": [{"name": "...", "translated_name": "...", "price": 0.0}],
  "fees": [{"name": "...", "amount": 0.0}],
  "discounts": [{"name": "...", "amount": 0.0}],
  "total": 0.0,
  "currency": "THB",
  "restaurant_name": "...",
  "date": "YYYY-MM-DD"
}
Rules:
- "items" are individual dishes/products only. Service charges, VAT, and other
  surcharges go into "fees"; reductions go into "discounts" as positive numbers.
- "translated_name" is an English translation when the item name is not in
  English, otherwise omit it.
- "total" is the final amount payable printed on the receipt.
- "currency" is the ISO 4217 code, inferred from symbols or locale if not printed.
- Omit any field you cannot read. Respond with JSON only.`

// OpenAIExtractor implements Extractor using an OpenAI vision model.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

// New creates an extractor. model may be empty, defaulting to GPT-4o.
func New(apiKey, model string) *OpenAIExtractor {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Extract sends the receipt image for analysis and decodes the structured
// result.
func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte) (*Result, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty receipt image")
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	imageURL := fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(image), encoded)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: extractionPrompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extraction returned no choices")
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return &result, nil
}
