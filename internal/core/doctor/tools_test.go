package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, missing ...string) {
	t.Helper()
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	lookPathFunc = func(file string) (string, error) {
		for _, m := range missing {
			if m == file {
				return "", &exec.Error{Name: file, Err: fmt.Errorf("not found")}
			}
		}
		return "/usr/bin/" + file, nil
	}
}

func TestToolsCheck_BothPresent(t *testing.T) {
	stubLookPath(t)

	result := NewToolsCheck(true).Run(context.Background())

	assert.Equal(t, "Dependencies", result.Name)
	require.Len(t, result.Items, 2)
	assert.Equal(t, CheckItem{Label: "git", Status: StatusPass, Detail: "/usr/bin/git"}, result.Items[0])
	assert.Equal(t, CheckItem{Label: "brew", Status: StatusPass, Detail: "/usr/bin/brew"}, result.Items[1])
}

func TestToolsCheck_GitMissing(t *testing.T) {
	stubLookPath(t, "git")

	result := NewToolsCheck(true).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

func TestToolsCheck_BrewMissing(t *testing.T) {
	stubLookPath(t, "brew")

	result := NewToolsCheck(true).Run(context.Background())
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.NotEmpty(t, result.Items[1].Hint)

	result = NewToolsCheck(false).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, "git", result.Items[0].Label)
}
