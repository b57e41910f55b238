package interp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"josephlewis.net/minsh/core/interp"
	"josephlewis.net/minsh/core/interp/interptest"
)

// chdirTemp moves the test into a fresh directory and restores the previous
// one afterwards. It returns the directory with symlinks resolved so it can
// be compared against os.Getwd.
func chdirTemp(t *testing.T) string {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(orig) })

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return dir
}

func cdLeaf(args ...string) *interp.Command {
	return &interp.Command{Simple: &interp.SimpleCommand{
		Args:    args,
		Builtin: interp.BuiltinCd,
	}}
}

func TestCdAbsolutePath(t *testing.T) {
	chdirTemp(t)
	target, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	spawner := interptest.NewSpawner(nil)
	e, _, _ := testEngine(t, spawner)

	stop, err := e.Execute(cdLeaf("cd", target))

	assert.NoError(t, err)
	assert.False(t, stop)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, target, wd)
	assert.Empty(t, spawner.Spawned(), "cd must never fork")
}

func TestCdRelativePath(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	e, _, _ := testEngine(t, interptest.NewSpawner(nil))

	_, err := e.Execute(cdLeaf("cd", "sub"))
	assert.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub"), wd)
}

func TestCdDotDot(t *testing.T) {
	dir := chdirTemp(t)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.Chdir(sub))

	e, _, _ := testEngine(t, interptest.NewSpawner(nil))

	_, err := e.Execute(cdLeaf("cd", ".."))
	assert.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd)
}

func TestCdMissingPath(t *testing.T) {
	dir := chdirTemp(t)

	e, _, stderrPath := testEngine(t, interptest.NewSpawner(nil))

	stop, err := e.Execute(cdLeaf("cd"))

	assert.NoError(t, err)
	assert.False(t, stop, "a failed cd never terminates the interpreter")
	assert.Contains(t, readFile(t, stderrPath), "Path expected after cd")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd, "the directory must be unchanged")
}

func TestCdInvalidPath(t *testing.T) {
	dir := chdirTemp(t)

	e, _, stderrPath := testEngine(t, interptest.NewSpawner(nil))

	stop, err := e.Execute(cdLeaf("cd", "does-not-exist"))

	assert.NoError(t, err)
	assert.False(t, stop)
	assert.Contains(t, readFile(t, stderrPath), "does-not-exist")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd)
}

func TestPwdBuiltin(t *testing.T) {
	dir := chdirTemp(t)

	spawner := interptest.NewSpawner(nil)
	e, stdoutPath, _ := testEngine(t, spawner)

	stop, err := e.Execute(leaf("pwd"))

	assert.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, dir+"\n", readFile(t, stdoutPath))
	assert.Empty(t, spawner.Spawned(), "pwd runs in the interpreter's process")
}

func TestHelpBuiltin(t *testing.T) {
	e, stdoutPath, _ := testEngine(t, interptest.NewSpawner(nil))

	_, err := e.Execute(leaf("help"))
	assert.NoError(t, err)

	out := readFile(t, stdoutPath)
	for _, name := range []string{"cd", "exit", "pwd", "help"} {
		assert.Contains(t, strings.Split(out, "\n"), name)
	}
}

func TestRedirectedBuiltinNameRunsExternally(t *testing.T) {
	spawner := interptest.NewSpawner(nil)
	e, _, stderrPath := testEngine(t, spawner)

	// pwd with a redirect skips the builtin and resolves like a program.
	cmd := leaf("pwd")
	cmd.Simple.Out = filepath.Join(t.TempDir(), "out.txt")
	stop, err := e.Execute(cmd)

	assert.NoError(t, err)
	assert.False(t, stop)
	assert.Contains(t, readFile(t, stderrPath), "pwd")
}
