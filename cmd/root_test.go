/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCLI builds an isolated command tree so tests don't share flag state
// with the production rootCmd.
func newTestCLI() *cobra.Command {
	cmd := newRootCommand()
	registerSubcommands(cmd)
	return cmd
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := newTestCLI()
	var out bytes.Buffer
	cli.SetOut(&out)
	cli.SetErr(&out)
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func seedFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	mustWrite("index.html",
		`<script src="https://framerusercontent.com/sites/abc123/script_main.mjs"></script>
<img src="https://framerusercontent.com/assets/logo123.png">`)
	mustWrite("sites/abc123/script_main.mjs", `import "./util.mjs";
export { helper } from "./util.mjs";`)
	return root
}

func TestScanCommand(t *testing.T) {
	root := seedFixture(t)

	out, err := runCLI(t, "scan", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, out, "=== site abc123 ===")
	assert.Contains(t, out, "- util.mjs")
	assert.Contains(t, out, "- logo123.png")
}

func TestRootDryRun(t *testing.T) {
	root := seedFixture(t)

	out, err := runCLI(t, "--dry-run", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, out, "- util.mjs")
	assert.NoFileExists(t, filepath.Join(root, "sites", "abc123", "util.mjs"))
	assert.NoDirExists(t, filepath.Join(root, "assets"))
	assert.NoDirExists(t, filepath.Join(root, "images"))
}

func TestMissingRootIsFatal(t *testing.T) {
	_, err := runCLI(t, "scan", "--root", filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestRootIsAFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := runCLI(t, "scan", "--root", file)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "framerfix")
}

func TestVersionCommand_Extended(t *testing.T) {
	out, err := runCLI(t, "version", "--extended")
	require.NoError(t, err)
	assert.Contains(t, out, "go:")
	assert.Contains(t, out, "platform:")
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	_, err := runCLI(t, "init", "--root", root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, ".framerfix.yaml"))

	// Second init without --force must refuse to overwrite.
	_, err = runCLI(t, "init", "--root", root)
	assert.Error(t, err)

	_, err = runCLI(t, "init", "--root", root, "--force")
	assert.NoError(t, err)
}

func TestInitCommand_TOML(t *testing.T) {
	root := t.TempDir()

	_, err := runCLI(t, "init", "--root", root, "--format", "toml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, ".framerfix.toml"))
}
