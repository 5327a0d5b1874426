package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/kalambet/resumeforge/internal/hf"
	"github.com/kalambet/resumeforge/internal/normalize"
	"github.com/kalambet/resumeforge/internal/resume"
)

const (
	draftMaxTokens   = 1600
	draftTemperature = 0.6
)

// Chatter is the model surface the drafter needs.
type Chatter interface {
	ChatCompletion(ctx context.Context, req hf.ChatRequest) (string, error)
}

// Drafter generates resume drafts through a chat model.
type Drafter struct {
	client Chatter
	model  string
}

// NewDrafter creates a drafter that generates with the given model.
func NewDrafter(client Chatter, model string) *Drafter {
	return &Drafter{client: client, model: model}
}

// Draft produces the final resume text for a profile: the contact
// header block followed by the normalized model output. The model sees
// only the assembled section text; the header is prepended verbatim so
// contact details never round-trip through generation.
func (d *Drafter) Draft(ctx context.Context, p *resume.Profile, opts resume.Options) (string, error) {
	body, err := d.client.ChatCompletion(ctx, hf.ChatRequest{
		Model: d.model,
		Messages: []hf.Message{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: BuildPrompt(p, opts)},
		},
		MaxTokens:   draftMaxTokens,
		Temperature: draftTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating draft: %w", err)
	}

	body = normalize.Apply(body)

	header := strings.Join(p.Contact.HeaderLines(), "\n")
	if header == "" {
		return body, nil
	}
	return header + "\n\n" + body, nil
}
