/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Empty(t, cfg.Scan.Exclude)
	assert.Equal(t, int64(8*1024*1024), cfg.Scan.MaxFileSizeBytes)
}

func TestLoad_NoConfigFile(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	root := t.TempDir()
	content := `http:
  timeout_seconds: 5
scan:
  exclude:
    - "backup/**"
  max_file_size_bytes: 1024
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".framerfix.yaml"), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, []string{"backup/**"}, cfg.Scan.Exclude)
	assert.Equal(t, int64(1024), cfg.Scan.MaxFileSizeBytes)
}

func TestLoad_TOML(t *testing.T) {
	root := t.TempDir()
	content := `[http]
timeout_seconds = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".framerfix.toml"), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	content := `origin: "https://elsewhere.example"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".framerfix.yaml"), []byte(content), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestLoad_RejectsWrongTypes(t *testing.T) {
	root := t.TempDir()
	content := `http:
  timeout_seconds: fast
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".framerfix.yaml"), []byte(content), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestWriteDefault_YAMLRoundTrip(t *testing.T) {
	root := t.TempDir()

	path, err := WriteDefault(root, "yaml", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".framerfix.yaml"), path)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefault_TOMLRoundTrip(t *testing.T) {
	root := t.TempDir()

	path, err := WriteDefault(root, "toml", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".framerfix.toml"), path)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()

	_, err := WriteDefault(root, "yaml", false)
	require.NoError(t, err)

	_, err = WriteDefault(root, "yaml", false)
	assert.Error(t, err)

	_, err = WriteDefault(root, "yaml", true)
	assert.NoError(t, err)
}

func TestWriteDefault_UnsupportedFormat(t *testing.T) {
	_, err := WriteDefault(t.TempDir(), "ini", false)
	assert.Error(t, err)
}
