package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const extractionSystemPrompt = `You help a user set up a live event (talent show, quiz night, pitch contest and the like).
From the conversation, extract everything you can about the event being planned.
Return every fixed field you are confident about; use null for anything still unknown.
Known fields already captured are provided; repeat them unchanged unless the user corrected them.
Put any extra event details that do not fit the fixed fields into dynamicFields as label/value/type entries
(type is one of: text, number, date, time, location, description).
Always include a short, friendly "message" replying to the user.`

// GeminiExtractor implements the extraction contract directly against the
// Gemini API, used when no backend is configured. A JSON response schema
// pins the model to the same snapshot shape the backend returns.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the client. model defaults to gemini-2.0-flash.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// Extract sends the conversation window and known fields to Gemini and
// decodes the schema-enforced JSON reply.
func (g *GeminiExtractor) Extract(ctx context.Context, req Request) (*Response, error) {
	known, err := json.Marshal(req.Known)
	if err != nil {
		return nil, fmt.Errorf("encoding known fields: %w", err)
	}

	contents := make([]*genai.Content, 0, len(req.Messages)+1)
	contents = append(contents, genai.NewContentFromText(
		"Known fields so far: "+string(known), genai.RoleUser))
	for i, m := range req.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		if role == genai.RoleUser && i == len(req.Messages)-1 && req.Attachment != nil {
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText(m.Content),
				genai.NewPartFromBytes(req.Attachment.Data, req.Attachment.MIME),
			}, role))
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(extractionSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    extractionSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}
	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("parsing gemini response: %w", err)
	}
	return &resp, nil
}

// extractionSchema mirrors the Response wire contract.
func extractionSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString, Nullable: genai.Ptr(true)}
	num := &genai.Schema{Type: genai.TypeNumber, Nullable: genai.Ptr(true)}
	whole := &genai.Schema{Type: genai.TypeInteger, Nullable: genai.Ptr(true)}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"eventName":        str,
			"eventType":        str,
			"participantCount": whole,
			"scoringMode": {
				Type:     genai.TypeString,
				Enum:     []string{"judges", "audience", "mixed"},
				Nullable: genai.Ptr(true),
			},
			"scoringAudience": num,
			"scoringJudge":    num,
			"venue":           str,
			"startDateTime":   str,
			"endDateTime":     str,
			"sponsor":         str,
			"rules":           str,
			"audienceLimit":   whole,
			"dynamicFields": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {Type: genai.TypeString},
						"value": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
						"type": {
							Type: genai.TypeString,
							Enum: []string{"text", "number", "date", "time", "location", "description"},
						},
					},
					Required: []string{"label", "type"},
				},
			},
			"message": {Type: genai.TypeString},
		},
		Required: []string{"message"},
	}
}
