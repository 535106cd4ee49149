package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	storageDir := filepath.Join(base, "storage")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\nstorage_dir = %q\nlog_dir = %q\n", storageDir, logDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestExportsListEmpty(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	out, _, err := runCLI(t, configPath, "exports")
	if err != nil {
		t.Fatalf("exports: %v", err)
	}
	requireContains(t, out, "No exports yet")
}

func TestRunsListEmpty(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	out, _, err := runCLI(t, configPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestGenerateRequiresMediaArgument(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	if _, _, err := runCLI(t, configPath, "generate"); err == nil {
		t.Fatal("expected missing argument error")
	}
	if _, _, err := runCLI(t, configPath, "generate", filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected missing media error")
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"Media", "Segments"}, [][]string{{"a.mp4", "12"}}, 2)
	requireContains(t, buf.String(), "a.mp4")
	requireContains(t, buf.String(), "12")
}
