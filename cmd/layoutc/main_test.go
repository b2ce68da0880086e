package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/flyweight/compiler"
	"github.com/alexhholmes/flyweight/flyweight"
	"github.com/alexhholmes/flyweight/internal/parser"
	"github.com/alexhholmes/flyweight/plan"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "layoutc inspect")

	_, _, err = runCmd(t, "frobnicate")
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)

	_, _, err = runCmd(t, "plan", "-format", "yaml", "testdata/hosts.json")
	assert.ErrorContains(t, err, "unknown plan format")
}

func TestInspect(t *testing.T) {
	stdout, stderr, err := runCmd(t, "inspect", "testdata/hosts.json")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	for _, want := range []string{
		"record Host", "element=20 bytes",
		"message HostConnection", "id=5 version=1 core=22 bytes",
		"(header)", "correlationId", "int64", "(count hosts)", "hosts[i]", "22+i*20",
		"message Heartbeat", "fixed", "healthy", "boolean",
	} {
		assert.Contains(t, stdout, want)
	}
}

func TestInspect_ReportsEveryError(t *testing.T) {
	stdout, stderr, err := runCmd(t, "inspect", "testdata/broken.json")
	assert.ErrorContains(t, err, "2 schema errors")

	assert.Contains(t, stderr, "bad_max_length")
	assert.Contains(t, stderr, "unknown_record")
	assert.Contains(t, stdout, "message Good")
	assert.NotContains(t, stdout, "message Bad")
}

func TestPlan_JSONToStdout(t *testing.T) {
	stdout, _, err := runCmd(t, "plan", "testdata/hosts.json")
	require.NoError(t, err)

	set, err := plan.ReadJSON(strings.NewReader(stdout))
	require.NoError(t, err)
	p, ok := set.Message("HostConnection")
	require.True(t, ok)
	assert.Equal(t, 22, p.Repeated.CountOffset+4)
}

func TestGen_FromPlanFile(t *testing.T) {
	dir := t.TempDir()
	plans := filepath.Join(dir, "plans.msgpack")

	_, _, err := runCmd(t, "plan", "-format", "msgpack", "-o", plans, "testdata/hosts.json")
	require.NoError(t, err)

	stdout, _, err := runCmd(t, "gen", "-pkg", "wire", "-plan", plans)
	require.NoError(t, err)
	assert.Contains(t, stdout, "package wire")
	assert.Contains(t, stdout, "func (m *HostConnection) HostsAt(i int) (*Host, error)")
	assert.Contains(t, stdout, "func (m *Heartbeat) Healthy() bool")
}

func TestGen_PackageFromOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wire")
	require.NoError(t, os.Mkdir(dir, 0o755))
	out := filepath.Join(dir, "hosts_gen.go")

	_, _, err := runCmd(t, "gen", "-o", out, "testdata/hosts.json")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(src), "// Code generated by layoutc. DO NOT EDIT."))
	assert.Contains(t, string(src), "package wire")
}

func TestGen_Errors(t *testing.T) {
	_, _, err := runCmd(t, "gen", "testdata/hosts.json")
	assert.ErrorContains(t, err, "-pkg is required")

	_, _, err = runCmd(t, "gen", "-pkg", "wire", "-plan", "plans.msgpack", "testdata/hosts.json")
	assert.ErrorContains(t, err, "mutually exclusive")
}

// writeHostConnection encodes a HostConnection with two hosts at offset.
func writeHostConnection(t *testing.T, offset int) string {
	t.Helper()
	batch, err := parser.Load("testdata/hosts.json")
	require.NoError(t, err)
	set, err := compiler.CompileBatch(batch)
	require.NoError(t, err)
	p, _ := set.Message("HostConnection")

	raw := make([]byte, offset+p.PrecomputeLength(2))
	v := flyweight.NewView(p)
	require.NoError(t, v.BindWriteHeader(flyweight.NewMutableBuffer(raw), offset))
	require.NoError(t, v.PutInt64(p.MustField("correlationId"), 77))
	require.NoError(t, v.Resize(2))

	elem := p.Repeated.Element
	for i, name := range []string{"alpha", "bravo"} {
		e, err := v.RecordAt(i)
		require.NoError(t, err)
		require.NoError(t, e.PutStringPadded(elem.MustField("hostName"), name))
		require.NoError(t, e.PutInt32(elem.MustField("port"), int32(9000+i)))
	}

	path := filepath.Join(t.TempDir(), "conn.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestDump_ByHeader(t *testing.T) {
	data := writeHostConnection(t, 3)

	stdout, _, err := runCmd(t, "dump", "-offset", "3", "testdata/hosts.json", data)
	require.NoError(t, err)

	for _, want := range []string{
		"message HostConnection",
		"id=5 version=1 valid",
		"correlationId", "77",
		"hosts: 2 x Host (20 bytes each)",
		`"alpha"`, "9000", `"bravo"`, "9001",
	} {
		assert.Contains(t, stdout, want)
	}
}

func TestDump_ExplicitMessageMismatch(t *testing.T) {
	data := writeHostConnection(t, 0)

	stdout, _, err := runCmd(t, "dump", "-message", "Heartbeat", "testdata/hosts.json", data)
	require.NoError(t, err)
	assert.Contains(t, stdout, "INVALID")
}

func TestDump_Errors(t *testing.T) {
	data := writeHostConnection(t, 0)

	_, _, err := runCmd(t, "dump", "-message", "Nope", "testdata/hosts.json", data)
	assert.ErrorContains(t, err, `no message named "Nope"`)

	_, _, err = runCmd(t, "dump", "-offset", "1000", "testdata/hosts.json", data)
	assert.ErrorContains(t, err, "read header")

	_, _, err = runCmd(t, "dump", "testdata/hosts.json")
	assert.ErrorContains(t, err, "expected schema and data arguments")
}
