package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"isynspec/internal/config"
	"isynspec/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := filepath.Dir(cfg.Workdir.Path)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[workdir]\nstrategy = %q\npath = %q\nlock = %v\n\n",
		cfg.Workdir.Strategy, cfg.Workdir.Path, cfg.Workdir.Lock)
	fmt.Fprintf(&b, "[session]\nmodel_dir = %q\noutput_dir = %q\n",
		cfg.Session.ModelDir, cfg.Session.OutputDir)
	if len(cfg.Session.InputFiles) > 0 {
		fmt.Fprintf(&b, "input_files = [%s]\n", quoteList(cfg.Session.InputFiles))
	}
	if len(cfg.Session.OutputFiles) > 0 {
		fmt.Fprintf(&b, "output_files = [%s]\n", quoteList(cfg.Session.OutputFiles))
	}
	fmt.Fprintf(&b, "\n[store]\npath = %q\n\n[logging]\ndir = %q\n",
		cfg.Store.Path, cfg.Logging.Dir)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return strings.Join(quoted, ", ")
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
