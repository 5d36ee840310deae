package model

import "time"

// ResearchType categorizes what kind of research produced a draft.
type ResearchType string

const (
	ResearchTypeCompany     ResearchType = "company"
	ResearchTypeProspect    ResearchType = "prospect"
	ResearchTypeCompetitive ResearchType = "competitive"
	ResearchTypeMarket      ResearchType = "market"
)

// PriorityLevel is the follow-up triage bucket derived from the composite score.
type PriorityLevel string

const (
	PriorityHot      PriorityLevel = "hot"
	PriorityWarm     PriorityLevel = "warm"
	PriorityStandard PriorityLevel = "standard"
)

// ConfidenceLevel reflects how many independent sources back a draft.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Source is a single research citation: the URL plus the search query that
// surfaced it, when known.
type Source struct {
	URL   string `json:"url"`
	Query string `json:"query,omitempty"`
}

// SearchBatch is the raw shape emitted by the search-tool event stream:
// one query and the URLs it returned.
type SearchBatch struct {
	Query string   `json:"query"`
	URLs  []string `json:"sources"`
}

// Contact is a named decision-maker recovered from the narrative.
type Contact struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// ResearchDraft is the structured record synthesized from a research agent's
// narrative answer. Scores are pointers so "not computed" is distinct from
// zero; the three scores are always set together or not at all.
type ResearchDraft struct {
	Subject          string          `json:"subject"`
	ResearchType     ResearchType    `json:"research_type"`
	ExecutiveSummary string          `json:"executive_summary"`
	MarkdownReport   string          `json:"markdown_report"`
	ICPFitScore      *int            `json:"icp_fit_score,omitempty"`
	SignalScore      *int            `json:"signal_score,omitempty"`
	CompositeScore   *int            `json:"composite_score,omitempty"`
	PriorityLevel    PriorityLevel   `json:"priority_level,omitempty"`
	ConfidenceLevel  ConfidenceLevel `json:"confidence_level,omitempty"`
	Sources          []Source        `json:"sources"`

	// CompanyData is sparse: a key is present only when the extractor
	// recovered a value, never as an empty placeholder.
	CompanyData map[string]string `json:"company_data"`

	// Populated empty by synthesis; enrichment fills these downstream.
	LeadershipTeam            []Contact      `json:"leadership_team"`
	BuyingSignals             []string       `json:"buying_signals"`
	CustomCriteriaAssessment  []string       `json:"custom_criteria_assessment"`
	PersonalizationPoints     []string       `json:"personalization_points"`
	RecommendedActions        map[string]any `json:"recommended_actions"`
}

// HasScores reports whether the scoring engine ran on this draft.
func (d *ResearchDraft) HasScores() bool {
	return d.ICPFitScore != nil && d.SignalScore != nil && d.CompositeScore != nil
}

// IsClarification reports whether the draft came from a clarification
// message rather than a completed research answer.
func (d *ResearchDraft) IsClarification() bool {
	return d.ExecutiveSummary == "" && d.MarkdownReport == ""
}

// StoredDraft is a persisted draft with store-owned identity and timestamps.
type StoredDraft struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Draft     ResearchDraft `json:"draft"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// UserProfile carries the user's configured research vocabulary.
type UserProfile struct {
	PreferredTerms   PreferredTerms `json:"preferred_terms"`
	IndicatorChoices []string       `json:"indicator_choices,omitempty"`
}

// PreferredTerms holds per-user label overrides.
type PreferredTerms struct {
	IndicatorsLabel string `json:"indicators_label,omitempty"`
}

// DraftInput is everything the synthesis pipeline consumes for one draft.
type DraftInput struct {
	AssistantMessage string        `json:"assistant_message"`
	UserMessage      string        `json:"user_message,omitempty"`
	ChatTitle        string        `json:"chat_title,omitempty"`
	AgentType        string        `json:"agent_type,omitempty"`
	Sources          []Source      `json:"sources,omitempty"`
	SearchBatches    []SearchBatch `json:"search_batches,omitempty"`
	ActiveSubject    string        `json:"active_subject,omitempty"`
	UserProfile      *UserProfile  `json:"user_profile,omitempty"`
}

// agentResearchTypes maps agent identifiers to research types. Unknown
// agents default to company research.
var agentResearchTypes = map[string]ResearchType{
	"company_research":     ResearchTypeCompany,
	"company":              ResearchTypeCompany,
	"prospect_research":    ResearchTypeProspect,
	"prospect":             ResearchTypeProspect,
	"competitive_analysis": ResearchTypeCompetitive,
	"competitive":          ResearchTypeCompetitive,
	"competitor":           ResearchTypeCompetitive,
	"market_research":      ResearchTypeMarket,
	"market":               ResearchTypeMarket,
}

// ResearchTypeForAgent resolves an agent identifier to a research type.
func ResearchTypeForAgent(agentType string) ResearchType {
	if rt, ok := agentResearchTypes[agentType]; ok {
		return rt
	}
	return ResearchTypeCompany
}

// PriorityForComposite buckets a composite score: hot ≥80, warm ≥60,
// standard below.
func PriorityForComposite(composite int) PriorityLevel {
	switch {
	case composite >= 80:
		return PriorityHot
	case composite >= 60:
		return PriorityWarm
	default:
		return PriorityStandard
	}
}

// ConfidenceForSources buckets a source count: high ≥3, medium 1–2, low 0.
func ConfidenceForSources(sourceCount int) ConfidenceLevel {
	switch {
	case sourceCount >= 3:
		return ConfidenceHigh
	case sourceCount >= 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
