package main

import (
	"path/filepath"
	"testing"

	"isynspec/internal/testsupport"
)

const controlFixture = `0 32 0
1 0 0 0
1 0 0 0 0
1 0 0 0 0
0 0 0
4000 5000 10 0 1.0e-4 0.01
2
19 20
2.0
10 0.001 1
`

func TestControlCheckAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "fort.55")
	testsupport.WriteFile(t, path, controlFixture)

	out, _, err := runCLI(t, []string{"control", "check", path}, env.configPath)
	if err != nil {
		t.Fatalf("control check: %v", err)
	}
	requireContains(t, out, "valid")

	out, _, err = runCLI(t, []string{"control", "show", path}, env.configPath)
	if err != nil {
		t.Fatalf("control show: %v", err)
	}
	requireContains(t, out, "normal")
	requireContains(t, out, "tlusty")
	requireContains(t, out, "turbulent velocity")
	requireContains(t, out, "angle points")
	requireContains(t, out, "19, 20")
}

func TestControlCheckRejectsBadBounds(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "fort.55")
	bad := `0 32 0
1 0 0 0
1 0 0 0 0
1 0 0 0 0
0 0 0
5000 4000 10 0 1.0e-4 0.01
0 0i
`
	testsupport.WriteFile(t, path, bad)

	if _, _, err := runCLI(t, []string{"control", "check", path}, env.configPath); err == nil {
		t.Fatal("expected error for inverted wavelength bounds")
	}
}

func TestAbundShow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "fort.56")
	testsupport.WriteFile(t, path, "    2\n 26 3.200E-05\n 12 4.100E-06\n")

	out, _, err := runCLI(t, []string{"abund", "show", path}, env.configPath)
	if err != nil {
		t.Fatalf("abund show: %v", err)
	}
	requireContains(t, out, "26")
	requireContains(t, out, "3.200E-05")
}

func TestSpectrumShowWithLimit(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "fort.7")
	testsupport.WriteFile(t, path,
		"  4000.0000 1.234E+15\n  4000.0100 1.235E+15\n  4000.0200 1.236E+15\n")

	out, _, err := runCLI(t, []string{"spectrum", "show", "--limit", "2", path}, env.configPath)
	if err != nil {
		t.Fatalf("spectrum show: %v", err)
	}
	requireContains(t, out, "4000.0100")
	requireContains(t, out, "Showing 2 of 3 points")
}

func TestSpectrumWidths(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "fort.16")
	testsupport.WriteFile(t, path,
		"  4000.00  4010.00  1.2345E+01  1.2000E+01  1.2345E+01  1.2000E+01\n")

	out, _, err := runCLI(t, []string{"spectrum", "widths", path}, env.configPath)
	if err != nil {
		t.Fatalf("spectrum widths: %v", err)
	}
	requireContains(t, out, "4010.0000")
	requireContains(t, out, "1.2345E+01")
}
