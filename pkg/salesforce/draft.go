package salesforce

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/synth"
)

// Account represents the slice of a Salesforce Account record the draft
// exporter reads and writes.
type Account struct {
	ID                string `json:"Id" salesforce:"Id"`
	Name              string `json:"Name" salesforce:"Name"`
	Website           string `json:"Website" salesforce:"Website"`
	Industry          string `json:"Industry" salesforce:"Industry"`
	Description       string `json:"Description" salesforce:"Description"`
	Rating            string `json:"Rating" salesforce:"Rating"`
	NumberOfEmployees int    `json:"NumberOfEmployees" salesforce:"NumberOfEmployees"`
}

// accountFields are the SOQL fields selected for Account queries.
var accountFields = []string{
	"Id", "Name", "Website", "Industry", "Description", "Rating", "NumberOfEmployees",
}

// FindAccountByName queries Salesforce for an Account matching the given name.
// Returns nil if no account is found.
func FindAccountByName(ctx context.Context, c Client, name string) (*Account, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Account WHERE Name = '%s' LIMIT 1",
		strings.Join(accountFields, ", "),
		escapeSoql(name),
	)

	var accounts []Account
	if err := c.Query(ctx, soql, &accounts); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find account by name %s", name))
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

// ratingForPriority maps draft priority levels to the stock Account Rating
// picklist values.
func ratingForPriority(p model.PriorityLevel) string {
	switch p {
	case model.PriorityHot:
		return "Hot"
	case model.PriorityWarm:
		return "Warm"
	case model.PriorityStandard:
		return "Cold"
	default:
		return ""
	}
}

// draftFields converts a research draft into Account field values.
func draftFields(draft model.ResearchDraft) map[string]any {
	fields := map[string]any{
		"Description": draft.ExecutiveSummary,
	}
	if rating := ratingForPriority(draft.PriorityLevel); rating != "" {
		fields["Rating"] = rating
	}
	if industry := draft.CompanyData[synth.FieldIndustry]; industry != "" {
		fields["Industry"] = industry
	}
	if website := draft.CompanyData[synth.FieldWebsite]; website != "" {
		fields["Website"] = website
	}
	if size := draft.CompanyData[synth.FieldSize]; size != "" {
		if n, err := strconv.Atoi(strings.Trim(strings.ReplaceAll(size, ",", ""), "+")); err == nil {
			fields["NumberOfEmployees"] = n
		}
	}
	return fields
}

// PushDraft writes a draft's summary and attributes onto the Account named by
// the draft subject, creating the Account when none exists. Returns the
// Salesforce Account ID and whether a new Account was created.
func PushDraft(ctx context.Context, c Client, draft model.ResearchDraft) (string, bool, error) {
	if draft.Subject == "" {
		return "", false, eris.New("sf: draft subject is required")
	}

	account, err := FindAccountByName(ctx, c, draft.Subject)
	if err != nil {
		return "", false, err
	}

	fields := draftFields(draft)

	if account != nil {
		if err := c.UpdateOne(ctx, "Account", account.ID, fields); err != nil {
			return "", false, eris.Wrap(err, fmt.Sprintf("sf: update account %s", account.ID))
		}
		zap.L().Info("salesforce account updated",
			zap.String("account_id", account.ID),
			zap.String("subject", draft.Subject),
		)
		return account.ID, false, nil
	}

	fields["Name"] = draft.Subject
	id, err := c.InsertOne(ctx, "Account", fields)
	if err != nil {
		return "", false, eris.Wrap(err, fmt.Sprintf("sf: create account for %s", draft.Subject))
	}
	zap.L().Info("salesforce account created",
		zap.String("account_id", id),
		zap.String("subject", draft.Subject),
	)
	return id, true, nil
}

// escapeSoql escapes single quotes in SOQL string literals.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
