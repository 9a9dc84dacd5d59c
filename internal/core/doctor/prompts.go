package doctor

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/hay-kot/gim/internal/core/prompt"
)

// PromptPaths resolves the override file of each prompt kind.
type PromptPaths interface {
	Path(kind prompt.Kind) string
}

// PromptCheck reports whether each prompt uses the built-in or a customized text.
type PromptCheck struct {
	paths PromptPaths
}

// NewPromptCheck creates a prompt check.
func NewPromptCheck(paths PromptPaths) *PromptCheck {
	return &PromptCheck{paths: paths}
}

func (c *PromptCheck) Name() string {
	return "Prompts"
}

func (c *PromptCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, kind := range prompt.Kinds {
		path := c.paths.Path(kind)
		label := string(kind) + " prompt"

		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusPass, Detail: "built-in (file created on first commit)"})
		case err != nil:
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusWarn, Detail: err.Error(), Hint: "built-in prompt is used instead"})
		case len(data) == 0:
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusWarn, Detail: path + " is empty", Hint: "gim prompt --reset"})
		case string(data) == prompt.Default(kind):
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusPass, Detail: "built-in (" + path + ")"})
		default:
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusPass, Detail: "customized (" + path + ")"})
		}
	}

	return result
}
