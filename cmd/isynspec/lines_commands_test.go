package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"isynspec/internal/testsupport"
)

const lineListFixture = "  388.8646  2.00  1.223  193917.12  2.0  219866.87  3.0  8.72  -4.51  -7.31  1\n" +
	"  0.987  1.234  1.567  1.890  0  0  -1\n" +
	"  395.2057 26.01 -0.238  195813.66  4.5  221109.78  4.5  8.49  -5.12  -7.71\n" +
	"  404.7208 19.00 -0.666       0.000 2.0   24701.382 2.0  7.56  -5.48  -7.45\n"

func writeLineListFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fort.19")
	testsupport.WriteFile(t, path, lineListFixture)
	return path
}

func TestLinesShowPlain(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeLineListFixture(t)

	out, _, err := runCLI(t, []string{"lines", "show", "--plain", path}, env.configPath)
	if err != nil {
		t.Fatalf("lines show: %v", err)
	}
	requireContains(t, out, "388.8646")
	requireContains(t, out, "404.7208")
	// Broadening continuation must survive the round trip.
	requireContains(t, out, "-1")
}

func TestLinesShowRangeFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeLineListFixture(t)

	out, _, err := runCLI(t, []string{"lines", "show", "--plain", "--range", "390:400", path}, env.configPath)
	if err != nil {
		t.Fatalf("lines show: %v", err)
	}
	requireContains(t, out, "395.2057")
	if strings.Contains(out, "388.8646") || strings.Contains(out, "404.7208") {
		t.Fatalf("range filter leaked lines: %q", out)
	}
}

func TestLinesShowBadRange(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeLineListFixture(t)

	_, _, err := runCLI(t, []string{"lines", "show", "--range", "5000:4000", path}, env.configPath)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestLinesFmtWritesCanonicalColumns(t *testing.T) {
	env := setupCLITestEnv(t)

	// Free-format input, comma separated.
	src := filepath.Join(t.TempDir(), "loose.19")
	testsupport.WriteFile(t, src, "395.2057, 26.01, -0.238, 195813.66, 4.5, 221109.78, 4.5, 8.49, -5.12, -7.71\n")
	dst := filepath.Join(t.TempDir(), "canonical.19")

	out, _, err := runCLI(t, []string{"lines", "fmt", "--out", dst, src}, env.configPath)
	if err != nil {
		t.Fatalf("lines fmt: %v", err)
	}
	requireContains(t, out, "Wrote 1 lines")

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read formatted output: %v", err)
	}
	requireContains(t, string(content), "  395.2057 26.01 -0.238")
}

func TestLinesShowMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"lines", "show", filepath.Join(t.TempDir(), "absent")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
