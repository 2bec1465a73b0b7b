package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	app := newApp()
	app.Reader = bytes.NewBufferString(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(context.Background(), append([]string{"nfgrapher"}, args...))

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestExampleCommand_List(t *testing.T) {
	out, err := run(t, "", "example")
	require.NoError(t, err)
	assert.Equal(t, "drum-loop\nfade-in\nmulti-track\n", out)
}

func TestExampleCommand_StableIDs(t *testing.T) {
	out, err := run(t, "", "example", "--stable-ids", "--indent", "0", "drum-loop")
	require.NoError(t, err)

	s, err := codec.Decode([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, "drum-loop-3", s.Graph.ID)
	require.Len(t, s.Graph.Nodes, 2)
	assert.Equal(t, "drum-loop-1", s.Graph.Nodes[0].NodeID())
	require.Len(t, s.Graph.Edges, 1)
	assert.Equal(t, "drum-loop-1", s.Graph.Edges[0].Source)
	assert.Equal(t, "drum-loop-2", s.Graph.Edges[0].Target)

	again, err := run(t, "", "example", "--stable-ids", "--indent", "0", "drum-loop")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestExampleCommand_Unknown(t *testing.T) {
	_, err := run(t, "", "example", "karaoke")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "karaoke")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	fade, err := run(t, "", "example", "fade-in")
	require.NoError(t, err)

	good := writeFile(t, dir, "good.json", fade)
	vendor := writeFile(t, dir, "vendor.json",
		`{"version":"1.2.12","graph":{"id":"g","nodes":[{"id":"v","kind":"com.example.vendor"}]}}`)
	broken := writeFile(t, dir, "broken.json", `{"version":"1.2.12","graph":{}}`)

	t.Run("clean document", func(t *testing.T) {
		out, err := run(t, "", "validate", good)
		require.NoError(t, err)
		assert.Equal(t, good+": ok\n", out)
	})

	t.Run("warnings pass unless strict", func(t *testing.T) {
		out, err := run(t, "", "validate", vendor)
		require.NoError(t, err)
		assert.Contains(t, out, "warning unknown_kind node v")

		_, err = run(t, "", "validate", "--strict", vendor)
		require.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("schema failures are reported", func(t *testing.T) {
		out, err := run(t, "", "validate", "--jobs", "2", good, broken)
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, out, good+": ok\n")
		assert.Contains(t, out, broken+": error schema_invalid graph.id: ")
		assert.Contains(t, err.Error(), "1 of 2")
	})

	t.Run("json output keeps argument order", func(t *testing.T) {
		out, err := run(t, "", "validate", "--json", broken, good)
		require.Error(t, err)

		var reports []fileReport
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 2)
		assert.Equal(t, broken, reports[0].File)
		assert.False(t, reports[0].Valid)
		assert.Equal(t, good, reports[1].File)
		assert.True(t, reports[1].Valid)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, fade, "validate", "-")
		require.NoError(t, err)
		assert.Equal(t, "-: ok\n", out)
	})

	t.Run("missing file aborts", func(t *testing.T) {
		_, err := run(t, "", "validate", filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, errValidationFailed)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, err := run(t, "", "validate")
		require.Error(t, err)
	})
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	messy := `{"graph":{"nodes":[{"kind":"com.nativeformat.plugin.waa.gain","id":"n"}],"id":"g"},"version":"1.2.12"}`

	out, err := run(t, messy, "fmt", "--indent", "0", "-")
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.2.12","graph":{"id":"g","nodes":[{"id":"n","kind":"com.nativeformat.plugin.waa.gain","config":{},"params":{},"loadingPolicy":"allContentPlaythrough"}],"edges":[],"scripts":[],"loadingPolicy":"allContentPlaythrough"}}`+"\n",
		out)

	path := writeFile(t, dir, "score.json", messy)
	out, err = run(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "\n  \"version\": \"1.2.12\",\n")

	_, err = run(t, "", "fmt", writeFile(t, dir, "bad.json", `{"graph":{}}`))
	require.ErrorIs(t, err, codec.ErrSchemaValidation)
}

func TestKindsCommand(t *testing.T) {
	out, err := run(t, "", "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "com.nativeformat.plugin.waa.gain")
	assert.Contains(t, out, "gain")

	out, err = run(t, "", "kinds", "com.nativeformat.plugin.file.file")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"file"}, schema["required"])

	_, err = run(t, "", "kinds", "com.example.unknown")
	require.Error(t, err)
}

func TestBuildExamples(t *testing.T) {
	for _, name := range exampleNames() {
		t.Run(name, func(t *testing.T) {
			s, err := buildExample(name, score.SequentialIDs(name))
			require.NoError(t, err)

			report := newRegistry(newTestLogger()).Check(s)
			assert.Empty(t, report.Issues)

			_, err = codec.Encode(s)
			require.NoError(t, err)
		})
	}
}

func TestFmtCommand_YAML(t *testing.T) {
	dir := t.TempDir()

	fade, err := run(t, "", "example", "--stable-ids", "fade-in")
	require.NoError(t, err)

	out, err := run(t, fade, "fmt", "--yaml", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.2.12\n")
	assert.Contains(t, out, "kind: com.nativeformat.plugin.waa.gain\n")

	path := writeFile(t, dir, "fade.yaml", out)

	report, err := run(t, "", "validate", path)
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", report)

	back, err := run(t, "", "fmt", path)
	require.NoError(t, err)
	assert.JSONEq(t, fade, back)
}
