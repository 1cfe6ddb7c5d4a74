package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty git root with its own HOME so config
// discovery finds nothing unless the test writes it.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, ".git"), 0755))
	t.Chdir(work)
	return work
}
