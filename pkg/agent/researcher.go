package agent

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-intel/internal/model"
)

// researchSystemPrompt steers the agent toward narratives the synthesis
// pipeline can parse: a markdown report with an executive summary, labeled
// company attributes, a decision-maker list, and bare source URLs.
const researchSystemPrompt = `You are a B2B sales research agent. Produce a markdown research report with these sections:

## Executive Summary
Three to four sentences covering what the company does, its momentum, and why it matters to a seller.

## Company Overview
Bullet points labeled Industry, Employees, Headquarters, Founded, and Website.

## Decision Makers
One bullet per person in the form "Name — Title".

## Buying Signals
Bullet points describing concrete purchase triggers.

End the report with a "Sources:" line listing every URL you relied on. If you cannot identify the research subject, ask one clarifying question instead of writing a report.`

// Researcher turns a research subject into the conversational input the
// synthesis pipeline consumes.
type Researcher struct {
	client    Client
	model     string
	maxTokens int64
}

// NewResearcher creates a Researcher on top of an agent Client.
func NewResearcher(client Client, model string, maxTokens int64) *Researcher {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Researcher{client: client, model: model, maxTokens: maxTokens}
}

// Research asks the agent for a narrative about subject and packages the
// exchange as a DraftInput. The system prompt carries a 1-hour cache
// breakpoint so repeated runs hit the warm prompt cache.
func (r *Researcher) Research(ctx context.Context, subject, agentType string) (*model.DraftInput, error) {
	userMsg := fmt.Sprintf("Research %s and produce a full report.", subject)

	resp, err := r.client.CreateMessage(ctx, MessageRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		System: []SystemBlock{
			{Text: researchSystemPrompt, CacheControl: &CacheControl{TTL: "1h"}},
		},
		Messages: []Message{
			{Role: "user", Content: userMsg},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "agent: research %s", subject)
	}
	resp.Usage.LogCost(r.model, subject)

	return &model.DraftInput{
		AssistantMessage: resp.Text(),
		UserMessage:      userMsg,
		ChatTitle:        subject,
		AgentType:        agentType,
		ActiveSubject:    subject,
	}, nil
}
