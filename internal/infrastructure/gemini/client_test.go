package gemini

import (
	"context"
	"testing"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestIntroductionPrompt(t *testing.T) {
	prompt := introductionPrompt(domain.IntroductionBrief{
		FounderName: "Wanjiru",
		StartupName: "PayGo",
		Sector:      "Fintech",
		Stage:       domain.StageMVP,
		Needs:       []string{"Fundraising", "Sales"},
		MentorName:  "Achieng",
		MentorTitle: "Partner",
		Reasons:     []string{"Expert in Fintech", "Based in Kenya"},
	})

	assert.Contains(t, prompt, "PayGo (sector: Fintech, stage: Early Stage)")
	assert.Contains(t, prompt, "Looking for help with: Fundraising, Sales")
	assert.Contains(t, prompt, "Why this mentor fits: Expert in Fintech; Based in Kenya")
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(" Hello "), genai.Text("there ")}},
		}},
	}
	assert.Equal(t, "Hello there", responseText(resp))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	assert.Error(t, err)
}
