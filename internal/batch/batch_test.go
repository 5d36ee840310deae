package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/synth"
)

func narrative(subject string) string {
	return "# " + subject + `

## Executive Summary

` + subject + ` builds industrial robots for mid-market logistics companies. Revenue grew forty percent last year on warehouse automation demand. The company closed a Series B in March.

## Company Overview

` + strings.Repeat(subject+" operates facilities across three regions and continues to expand headcount. ", 8) + `

Sources: https://example.com/` + strings.ToLower(strings.Fields(subject)[0]) + `
`
}

func fullInput(subject string) model.DraftInput {
	return model.DraftInput{
		AssistantMessage: narrative(subject),
		ChatTitle:        subject,
		AgentType:        "company_research",
		Sources: []model.Source{
			{URL: "https://example.com/" + strings.ToLower(strings.Fields(subject)[0]), Query: subject},
		},
	}
}

func writeJSONL(t *testing.T, inputs []model.DraftInput) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inputs.jsonl")
	var lines []string
	for _, in := range inputs {
		raw, err := json.Marshal(in)
		require.NoError(t, err)
		lines = append(lines, string(raw))
	}
	// Trailing blank line should be tolerated.
	content := strings.Join(lines, "\n") + "\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadInputs(t *testing.T) {
	path := writeJSONL(t, []model.DraftInput{
		fullInput("Acme Corp"),
		fullInput("Globex Industries"),
	})

	inputs, err := ReadInputs(path)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Acme Corp", inputs[0].ChatTitle)
	assert.Equal(t, "Globex Industries", inputs[1].ChatTitle)
}

func TestReadInputs_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"chat_title\":\"ok\"}\n{nope\n"), 0o644))

	_, err := ReadInputs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadInputs_MissingFile(t *testing.T) {
	_, err := ReadInputs(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
}

func TestRun_KeepsInputOrder(t *testing.T) {
	inputs := []model.DraftInput{
		fullInput("Acme Corp"),
		fullInput("Globex Industries"),
		fullInput("Initech"),
	}

	results, err := Run(context.Background(), inputs, synth.Options{}, 4)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []string{"Acme Corp", "Globex Industries", "Initech"} {
		assert.Equal(t, i, results[i].Index)
		assert.Equal(t, want, results[i].Draft.Subject)
		assert.True(t, results[i].Valid(), "draft %d should validate", i)
	}
}

func TestRun_InvalidDraftDoesNotAbortBatch(t *testing.T) {
	inputs := []model.DraftInput{
		{AssistantMessage: "What type of research would be most helpful?", ChatTitle: "Acme Corp"},
		fullInput("Globex Industries"),
	}

	results, err := Run(context.Background(), inputs, synth.Options{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Valid())
	assert.True(t, results[0].Draft.IsClarification())
	assert.True(t, results[1].Valid())
}

func TestRun_Empty(t *testing.T) {
	results, err := Run(context.Background(), nil, synth.Options{}, 0)
	require.NoError(t, err)
	assert.Nil(t, results)
}
