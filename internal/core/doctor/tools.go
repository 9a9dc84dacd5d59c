package doctor

import (
	"context"
	"os/exec"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that required external tools are available on $PATH.
type ToolsCheck struct {
	needBrew bool
}

// NewToolsCheck creates a new tools check. Homebrew is reported as a warning
// when missing and needBrew is set, since update checks then cannot run.
func NewToolsCheck(needBrew bool) *ToolsCheck {
	return &ToolsCheck{needBrew: needBrew}
}

func (c *ToolsCheck) Name() string {
	return "Dependencies"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if path, err := lookPathFunc("git"); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "git",
			Status: StatusFail,
			Detail: "not found on PATH",
			Hint:   "install git",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "git",
			Status: StatusPass,
			Detail: path,
		})
	}

	path, err := lookPathFunc("brew")
	switch {
	case err == nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "brew",
			Status: StatusPass,
			Detail: path,
		})
	case c.needBrew:
		result.Items = append(result.Items, CheckItem{
			Label:  "brew",
			Status: StatusWarn,
			Detail: "not found on PATH (used for update checks)",
			Hint:   `set update.source = "github" in the config file`,
		})
	}

	return result
}
