package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidPrefs(t *testing.T) {
	path := writePrefs(t, "pkg_name: app\nout_path: build/app.c\nc_toolchain: clang\n")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app", p.PkgName)
	assert.Equal(t, "build/app.c", p.OutPath)
	assert.Equal(t, Clang, p.CToolchain)
}

func TestLoadMissingPkgName(t *testing.T) {
	path := writePrefs(t, "out_path: out.c\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pkg_name")
}

func TestLoadUnknownToolchain(t *testing.T) {
	path := writePrefs(t, "pkg_name: app\nc_toolchain: watcom\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watcom")
}

func TestValidateFillsDefaults(t *testing.T) {
	p := &Prefs{PkgName: "app"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "out.c", p.OutPath)
	assert.Equal(t, GCC, p.CToolchain)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaultPrefs(t *testing.T) {
	p := Default()
	assert.Equal(t, "main", p.PkgName)
	assert.Equal(t, GCC, p.CToolchain)
}
