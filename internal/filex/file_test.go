package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDBPath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"vivigo.db", "vivigo.db"},
		{"/var/lib/vivigo/session.db", "/var/lib/vivigo/session.db"},
		{"file:data/session.db?_pragma=busy_timeout(5000)", "data/session.db"},
		{":memory:", ""},
		{"file:test?mode=memory&cache=shared", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			require.Equal(t, tt.want, DBPath(tt.dsn))
		})
	}
}

func TestEnsureDBDir_CreatesParent(t *testing.T) {
	tmp := t.TempDir()
	dsn := filepath.Join(tmp, "state", "vivigo", "session.db")

	require.NoError(t, EnsureDBDir(dsn))

	fi, err := os.Stat(filepath.Dir(dsn))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDBDir_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state", "session.db")

	require.NoError(t, EnsureDBDir(dsn))
	require.NoError(t, EnsureDBDir(dsn))
}

func TestEnsureDBDir_InMemoryIsNoop(t *testing.T) {
	require.NoError(t, EnsureDBDir(":memory:"))
}

func TestEnsureDBDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureDBDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err, "should fail when a file exists with the directory's name")
}
