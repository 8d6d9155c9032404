// The cmd/ package holds CLI integration tests that run the built binary:
// flag parsing -> extension -> viewer/admission -> renderer, with the
// config cascade and the audit log writing to an isolated HOME.
//
// Packages with their own unit tests (render, admission, config) are
// exercised here only through their command surface.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the srcview binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "srcview-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "srcview"
		if os.PathSeparator == '\\' {
			binaryName = "srcview.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates an empty workspace and an empty home directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// file writes content to a slash path inside the workspace.
func (e *testEnv) file(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(name))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"SRCVIEW_WORKSPACE=",
		"PWD="+e.dir,
	)
	return cmd
}

// run executes srcview with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("srcview %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes srcview and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// stdout executes srcview and returns standard output only.
func (e *testEnv) stdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(args...).Output()
	if err != nil {
		e.t.Fatalf("srcview %v failed: %v", args, err)
	}
	return string(out)
}

// runStdin executes srcview with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("srcview %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// lines splits trimmed output into lines.
func lines(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

// normalised returns p with forward slashes, as srcview prints paths.
func normalised(p string) string {
	return filepath.ToSlash(p)
}

// testJava is a small source file with known line and column positions.
const testJava = `package demo;

public class Greeter {
    private final String name = "world";

    public String greet() {
        return "Hello, " + name + "!";
    }
}
`
