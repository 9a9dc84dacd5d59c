package doctor

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/config"
)

// ConfigCheck verifies that the AI settings are complete enough to commit.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a check for cfg loaded from path.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	ai := c.cfg.AI

	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusWarn, Detail: c.path + " (not created yet)"})
	} else {
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.path})
	}

	result.Items = append(result.Items, required("ai.model", ai.Model, ai.Model, "gim ai --model <name>"))
	result.Items = append(result.Items, required("ai.apikey", ai.APIKey, ai.MaskedKey(), "gim ai --apikey <key>"))

	switch {
	case ai.URL != "" && !chat.ValidURL(ai.URL):
		result.Items = append(result.Items, CheckItem{
			Label:  "ai.url",
			Status: StatusWarn,
			Detail: ai.URL + " is not an absolute http(s) URL and is ignored",
			Hint:   "gim ai --url https://host/v1",
		})
	case ai.Model != "":
		if endpoint, err := chat.ResolveEndpoint(ai.Model, ai.URL); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  "endpoint",
				Status: StatusFail,
				Detail: "no known provider for model " + ai.Model,
				Hint:   "gim ai --url <endpoint>",
			})
		} else {
			result.Items = append(result.Items, CheckItem{Label: "endpoint", Status: StatusPass, Detail: endpoint})
		}
	}

	result.Items = append(result.Items, CheckItem{Label: "language", Status: StatusPass, Detail: ai.Language})
	return result
}

func required(label, value, detail, hint string) CheckItem {
	if value == "" {
		return CheckItem{Label: label, Status: StatusFail, Detail: "not set", Hint: hint}
	}
	return CheckItem{Label: label, Status: StatusPass, Detail: detail}
}
