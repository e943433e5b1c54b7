package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

var ErrEmptyResponse = errors.New("gemini returned no content")

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.6)
	model.SetMaxOutputTokens(400)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateIntroduction writes a short first message from a founder to a
// prospective mentor.
func (c *Client) GenerateIntroduction(ctx context.Context, brief domain.IntroductionBrief) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(introductionPrompt(brief)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func introductionPrompt(b domain.IntroductionBrief) string {
	return fmt.Sprintf(`
		Write the first message a startup founder sends to a potential mentor.
		Founder: %s
		Startup: %s (sector: %s, stage: %s)
		Looking for help with: %s
		Mentor: %s, %s
		Why this mentor fits: %s

		Task: 80-120 words, warm and specific, first person, no subject line,
		no placeholders. End with a concrete ask for a first conversation.
		Output: just the message text.
	`,
		b.FounderName,
		b.StartupName, b.Sector, b.Stage.Label(),
		strings.Join(b.Needs, ", "),
		b.MentorName, b.MentorTitle,
		strings.Join(b.Reasons, "; "),
	)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}
