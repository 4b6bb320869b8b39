package injector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/runner"
)

func TestProvideDefaults(t *testing.T) {
	cfg, err := ProvideConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	c, err := ProvideCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())
}

func TestProvideFromFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hexcurl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("physics:\n  snap_distance: 20\nlog:\n  level: error\n"), 0o600))
	levelsPath := filepath.Join(dir, "levels.yaml")
	require.NoError(t, os.WriteFile(levelsPath, []byte("levels:\n  - name: only\n    hex_radius: 50\n    completion: sweep\n    tiles:\n      - {q: 0, r: 0, type: slow_down}\n"), 0o600))

	cfg, err := ProvideConfig(ConfigPath(cfgPath))
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Physics.SnapDistance)

	c, err := ProvideCatalog(LevelsPath(levelsPath))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, c.Names())
}

func TestInitializeRunner(t *testing.T) {
	r, cleanup, err := InitializeRunner("", "", runner.DefaultOptions())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, r)

	_, _, err = InitializeRunner("", LevelsPath(filepath.Join(t.TempDir(), "missing.yaml")), runner.DefaultOptions())
	assert.Error(t, err)

	_, _, err = InitializeRunner("", "", runner.Options{})
	assert.ErrorIs(t, err, runner.ErrInvalidTime)
}
