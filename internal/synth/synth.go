// Package synth converts a research agent's free-form markdown answer plus
// conversational context into a validated, persistable ResearchDraft. Every
// stage is a pure function over immutable inputs: no I/O, no shared state,
// no network. Absence of structure degrades to empty or fallback fields,
// never to an error.
package synth

import (
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/model"
)

// Options tunes the parts of synthesis that are caller policy rather than
// narrative structure.
type Options struct {
	// TargetTitles extends the contact extractor's role vocabulary.
	TargetTitles []string
	// MaxContacts caps contact extraction; <=0 uses DefaultMaxContacts.
	MaxContacts int
}

// Synthesize runs the full draft synthesis pipeline. It always returns a
// draft: clarification messages produce a draft with subject and type
// resolved but summary, report, scores, and sources empty.
func Synthesize(input model.DraftInput, opts Options) model.ResearchDraft {
	draft := model.ResearchDraft{
		ResearchType:             model.ResearchTypeForAgent(input.AgentType),
		Sources:                  []model.Source{},
		CompanyData:              map[string]string{},
		LeadershipTeam:           []model.Contact{},
		BuyingSignals:            []string{},
		CustomCriteriaAssessment: []string{},
		PersonalizationPoints:    []string{},
		RecommendedActions:       map[string]any{},
	}

	draft.Subject = SanitizeSubject(
		ResolveSubject(input.ChatTitle, input.AssistantMessage, input.UserMessage),
		input.ActiveSubject,
	)

	if IsClarification(input.AssistantMessage) {
		zap.L().Debug("synth: clarification message, skipping synthesis",
			zap.String("subject", draft.Subject))
		return draft
	}

	draft.Sources = NormalizeSources(input.Sources, input.SearchBatches, input.AssistantMessage)
	draft.ExecutiveSummary = BuildSummary(input.AssistantMessage)

	// The report drops the executive-summary section (the summary field
	// already carries it) and speaks the user's vocabulary.
	report := input.AssistantMessage
	if sec := FindSection(report, "Executive Summary"); sec != nil {
		if stripped := RemoveSection(report, sec); stripped != "" {
			report = stripped
		}
	}
	var label string
	var indicators []string
	if input.UserProfile != nil {
		label = input.UserProfile.PreferredTerms.IndicatorsLabel
		indicators = input.UserProfile.IndicatorChoices
	}
	draft.MarkdownReport = AdaptTerminology(report, label, indicators)

	draft.CompanyData = ExtractCompanyData(input.AssistantMessage)

	scores := ComputeScores(input.AssistantMessage, len(draft.Sources))
	draft.ICPFitScore = &scores.ICPFit
	draft.SignalScore = &scores.Signal
	draft.CompositeScore = &scores.Composite
	draft.PriorityLevel = model.PriorityForComposite(scores.Composite)
	draft.ConfidenceLevel = model.ConfidenceForSources(len(draft.Sources))

	zap.L().Debug("synth: draft synthesized",
		zap.String("subject", draft.Subject),
		zap.String("research_type", string(draft.ResearchType)),
		zap.Int("sources", len(draft.Sources)),
		zap.Int("composite", scores.Composite))

	return draft
}

// Contacts extracts decision-makers from the narrative with the pipeline's
// options. Contact enrichment of the draft itself is the reviewer's call,
// so the result rides alongside the draft rather than inside it.
func Contacts(input model.DraftInput, opts Options) []model.Contact {
	if IsClarification(input.AssistantMessage) {
		return []model.Contact{}
	}
	return ExtractContacts(input.AssistantMessage, ContactOptions{
		TargetTitles: opts.TargetTitles,
		MaxContacts:  opts.MaxContacts,
	})
}
