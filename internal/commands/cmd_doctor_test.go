package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gim/internal/core/config"
)

type doctorJSON struct {
	Healthy bool `json:"healthy"`
	Summary struct {
		Failed int `json:"failed"`
	} `json:"summary"`
	Checks []struct {
		Name  string `json:"name"`
		Items []struct {
			Label  string `json:"label"`
			Status string `json:"status"`
		} `json:"items"`
	} `json:"checks"`
}

func itemStatus(doc doctorJSON, check, label string) string {
	for _, c := range doc.Checks {
		if c.Name != check {
			continue
		}
		for _, item := range c.Items {
			if item.Label == label {
				return item.Status
			}
		}
	}
	return ""
}

func TestDoctorCmd_JSONReportsMissingConfig(t *testing.T) {
	flags := testFlags(t, func(cfg *config.Config) {
		cfg.Update.Source = config.SourceGitHub
	})

	res, err := runApp(t, NewDoctorCmd(flags), "doctor", "--format", "json")
	require.Error(t, err, "missing model and key fail the run")

	var doc doctorJSON
	require.NoError(t, json.Unmarshal(res.out.Bytes(), &doc))
	assert.False(t, doc.Healthy)
	assert.Positive(t, doc.Summary.Failed)
	assert.Equal(t, "fail", itemStatus(doc, "Configuration", "ai.model"))

	names := make([]string, 0, len(doc.Checks))
	for _, c := range doc.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Dependencies", "Configuration", "Prompts"}, names)
}

func TestDoctorCmd_TextOutput(t *testing.T) {
	flags := testFlags(t, func(cfg *config.Config) {
		cfg.AI.Model = "gpt-4o-mini"
		cfg.AI.APIKey = "sk-test-1234"
		cfg.Update.Source = config.SourceGitHub
	})

	res, err := runApp(t, NewDoctorCmd(flags), "doctor")

	out := res.out.String()
	assert.Contains(t, out, "gim doctor")
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "passed")
	assert.NotContains(t, out, "sk-test-1234")

	// git may be absent on the test machine; the config itself is healthy.
	if err != nil {
		assert.Contains(t, out, "git")
	}
}

func TestDoctorCmd_UnknownFormat(t *testing.T) {
	_, err := runApp(t, NewDoctorCmd(testFlags(t, nil)), "doctor", "--format", "yaml")
	require.Error(t, err)
}
