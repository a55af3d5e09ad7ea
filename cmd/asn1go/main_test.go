package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharedModule = `
Shared DEFINITIONS AUTOMATIC TAGS ::= BEGIN
	Name ::= UTF8String (SIZE(1..16))
END`

const appModule = `
App DEFINITIONS AUTOMATIC TAGS ::= BEGIN
	IMPORTS Name FROM Shared;
	limit INTEGER ::= 3
	Person ::= SEQUENCE {
		name Name,
		age  INTEGER (0..150) OPTIONAL
	}
END`

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeModules(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "Shared.asn"), []byte(sharedModule), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.schema"), []byte(appModule), 0o644))
	return dir
}

func TestCheck(t *testing.T) {
	dir := writeModules(t)
	app := filepath.Join(dir, "app.schema")

	res := runCLI(t, "check", "-I", filepath.Join(dir, "lib"), app)
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "App: 1 types, 1 values\n")
	assert.Contains(t, res.stdout, "Shared: 1 types, 0 values\n")

	res = runCLI(t, "check", "-q", "-I", filepath.Join(dir, "lib"), app)
	assert.Equal(t, exitOK, res.code)
	assert.Empty(t, res.stdout)
}

func TestCheckReportsErrors(t *testing.T) {
	dir := writeModules(t)

	res := runCLI(t, "check", filepath.Join(dir, "app.schema"))
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "error: ")
	assert.Contains(t, res.stderr, "Shared")

	broken := filepath.Join(dir, "Broken.asn")
	require.NoError(t, os.WriteFile(broken, []byte("Broken DEFINITIONS ::= BEGIN T ::= END"), 0o644))
	res = runCLI(t, "check", broken)
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Broken.asn")
}

func TestCheckVerbose(t *testing.T) {
	dir := writeModules(t)
	res := runCLI(t, "check", "-vv", "-I", filepath.Join(dir, "lib"), filepath.Join(dir, "app.schema"))
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "resolution complete")
}

func TestGenerate(t *testing.T) {
	dir := writeModules(t)
	out := filepath.Join(dir, "gen")

	res := runCLI(t, "generate", "-I", filepath.Join(dir, "lib"), "-p", "sample", "-o", out, filepath.Join(dir, "app.schema"))
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, filepath.Join(out, "shared.go")+"\n"+filepath.Join(out, "app.go")+"\n", res.stdout)

	content, err := os.ReadFile(filepath.Join(out, "app.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package sample\n")
	assert.Contains(t, string(content), "type Person struct")
}

func TestGenerateConfig(t *testing.T) {
	dir := writeModules(t)
	cfgPath := filepath.Join(dir, "asn1go.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
package: lib
output: out
formats: [uper]
sources: [lib]
`), 0o644))

	res := runCLI(t, "generate", "-c", cfgPath)
	require.Equal(t, exitOK, res.code, res.stderr)

	content, err := os.ReadFile(filepath.Join(dir, "out", "shared.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "// Formats: uper\n")
	assert.Contains(t, string(content), "package lib\n")

	res = runCLI(t, "generate", "-c", cfgPath, "-p", "other", "-o", filepath.Join(dir, "alt"))
	require.Equal(t, exitOK, res.code, res.stderr)
	content, err = os.ReadFile(filepath.Join(dir, "alt", "shared.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package other\n")
}

func TestGenerateErrors(t *testing.T) {
	dir := writeModules(t)

	res := runCLI(t, "generate")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "no input files")

	res = runCLI(t, "generate", "-p", "not-a-name", filepath.Join(dir, "app.schema"))
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "not a Go identifier")

	res = runCLI(t, "generate", "-c", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, exitError, res.code)
}

func TestUsage(t *testing.T) {
	res := runCLI(t)
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Usage:")

	res = runCLI(t, "frobnicate")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "unknown command")

	res = runCLI(t, "check")
	assert.Equal(t, exitError, res.code)

	res = runCLI(t, "version")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "asn1go ")
}
