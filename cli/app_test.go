package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/xrspace/logging"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := logging.Global()
	defer logging.ReplaceGlobal(prev)
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"xrspace"}, args...))
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replay.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestDecode(t *testing.T) {
	out, errOut, err := runApp(t, "decode", "--position", "1,2,3", "--orientation", "0,0,0,2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)
	test.That(t, out, test.ShouldContainSubstring, "X:1.000, Y:2.000, Z:3.000")
	test.That(t, out, test.ShouldContainSubstring, "X:0.0000, Y:0.0000, Z:0.0000, W:1.0000")
	test.That(t, strings.ToUpper(out), test.ShouldContainSubstring, "MATRIX")

	t.Run("missing orientation warns", func(t *testing.T) {
		out, errOut, err := runApp(t, "decode", "--position", "1,2,3")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, errOut, test.ShouldContainSubstring, "zero quaternion")
		test.That(t, out, test.ShouldContainSubstring, "W:0.0000")
	})

	t.Run("bad values", func(t *testing.T) {
		_, _, err := runApp(t, "decode", "--position", "1,2")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "expected 3 comma separated values")

		_, _, err = runApp(t, "decode", "--orientation", "0,0,x,1")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "--orientation")

		_, _, err = runApp(t, "decode", "--position", "NaN,0,0")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "invalid pose sample")
	})
}

const replayJSON = `{
	"reference_spaces": [{"name": "floor", "type": "local-floor", "attributes": {"floor_height": 1.5}}],
	"inputs": [{"name": "left", "handedness": "left"}],
	"frames": [
		{"device": {"position": [0, 0.5, 0], "orientation": [0, 0, 0, 1]}, "inputs": {"left": {"position": [0.25, 0, 0]}}},
		{"device": {"position": [0, 0.5, 0]}, "disconnect": ["left"]},
		{"device": {"position": [1, 0, 0], "orientation": [0, 0, 0, 1]}, "connect": ["left"],
			"inputs": {"left": {"position": [0, 0, 0.75], "orientation": [0, 0, 0, 1]}}}
	]
}`

func TestResolve(t *testing.T) {
	path := writeConfig(t, replayJSON)
	out, errOut, err := runApp(t, "resolve", "--config", path)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, strings.ToUpper(out), test.ShouldContainSubstring, "FRAME 0")
	test.That(t, strings.ToUpper(out), test.ShouldContainSubstring, "FRAME 2")
	// viewer at 0.5 above a tracking origin that is 1.5 above the floor
	test.That(t, out, test.ShouldContainSubstring, "X:0.000, Y:2.000, Z:0.000")
	// the input has no orientation yet; its translation is still resolved
	test.That(t, out, test.ShouldContainSubstring, "X:0.250, Y:1.500, Z:0.000")
	test.That(t, out, test.ShouldContainSubstring, "X:0.000, Y:1.500, Z:0.750")

	test.That(t, errOut, test.ShouldContainSubstring, `frame 1: input "left" is disconnected`)
	test.That(t, strings.Count(errOut, "is disconnected"), test.ShouldEqual, 1)
}

func TestResolveRelativeTo(t *testing.T) {
	path := writeConfig(t, replayJSON)
	out, _, err := runApp(t, "resolve", "--config", path, "--relative-to", "viewer")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "X:0.000, Y:-2.000, Z:0.000")

	t.Run("disconnected base skips the frame", func(t *testing.T) {
		_, errOut, err := runApp(t, "resolve", "--config", path, "--relative-to", "left")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, errOut, test.ShouldContainSubstring, "skipping frame 1: base space is disconnected")
	})

	t.Run("unknown base", func(t *testing.T) {
		_, _, err := runApp(t, "resolve", "--config", path, "--relative-to", "table")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, `no space named "table"`)
	})
}

func TestResolveMissingConfig(t *testing.T) {
	_, _, err := runApp(t, "resolve", "--config", filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read config")

	_, _, err = runApp(t, "resolve")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLogLevel(t *testing.T) {
	path := writeConfig(t, replayJSON)

	_, errOut, err := runApp(t, "resolve", "--config", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "replaying frame")

	_, errOut, err = runApp(t, "--log-level", "debug", "resolve", "--config", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "replaying frame")
	test.That(t, errOut, test.ShouldContainSubstring, "input source connected")

	_, errOut, err = runApp(t, "--debug", "resolve", "--config", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "replaying frame")

	_, errOut, err = runApp(t, "--log-level", "error", "resolve", "--config", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "input source connected")

	_, _, err = runApp(t, "--log-level", "loud", "decode")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--log-level")
}

func TestRunInstallsGlobalLogger(t *testing.T) {
	prev := logging.Global()
	defer logging.ReplaceGlobal(prev)

	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{"xrspace", "--log-level", "info", "decode"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global(), test.ShouldNotEqual, prev)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.INFO)
}
