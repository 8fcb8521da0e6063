package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
// Equivalent to t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MBTESTGEN_HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Num)
	assert.Equal(t, "lookup_gen_test.go", cfg.Output)
	assert.Equal(t, DefaultArchiveURL, cfg.ArchiveURL)
	assert.Contains(t, cfg.UserAgent, "mbtestgen/")
	assert.Equal(t, int64(0), cfg.Seed)
}

func TestLoadFlagOverride(t *testing.T) {
	t.Setenv("MBTESTGEN_HOME", t.TempDir())
	chdir(t, t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("num", 25, "")
	fs.String("output", "lookup_gen_test.go", "")
	require.NoError(t, fs.Parse([]string{"--num", "3", "--output", "custom_test.go"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Num)
	assert.Equal(t, "custom_test.go", cfg.Output)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MBTESTGEN_HOME", t.TempDir())
	t.Setenv("MBTESTGEN_NUM", "7")
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Num)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("MBTESTGEN_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mbtestgen.yaml"),
		[]byte("num: 5\nentities:\n  - Area\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Num)
	assert.Equal(t, []string{"Area"}, cfg.Entities)
}

func TestHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MBTESTGEN_HOME", dir)

	home, err := Home()
	require.NoError(t, err)
	assert.Equal(t, dir, home)
}

func TestCacheDirNotCreated(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MBTESTGEN_HOME", home)

	cacheDir, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "mbids"), cacheDir)

	// Home exists, but the cache directory itself must stay absent so the
	// fetcher's existence check still fires.
	_, statErr := os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(statErr))
}
