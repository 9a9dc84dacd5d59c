package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameStatus(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		changes, err := parseNameStatus("")
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("copy", func(t *testing.T) {
		changes, err := parseNameStatus("C075\x00src.go\x00dst.go\x00")
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "C", changes[0].Status)
		assert.Equal(t, "src.go", changes[0].OrigPath)
		assert.Equal(t, "dst.go", changes[0].Path)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := parseNameStatus("M")
		require.Error(t, err)
	})
}

func TestPatchStats(t *testing.T) {
	patch := `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,5 @@
 package main
-func old() {}
+func a() {}
+func b() {}
+func c() {}
 func main() {}
`

	add, del, err := PatchStats(patch)
	require.NoError(t, err)
	assert.Equal(t, 3, add)
	assert.Equal(t, 1, del)
}

func TestPatchStats_Empty(t *testing.T) {
	add, del, err := PatchStats("  \n")
	require.NoError(t, err)
	assert.Zero(t, add)
	assert.Zero(t, del)
}

func TestDiffSource_String(t *testing.T) {
	assert.Equal(t, "staged changes", DiffStaged.String())
	assert.Equal(t, "last commit", DiffLastCommit.String())
	assert.Equal(t, "unknown", DiffSource(9).String())
}

func TestParseStatus_Malformed(t *testing.T) {
	_, err := parseStatus("MM\x00")
	require.Error(t, err)
}
