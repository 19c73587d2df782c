package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"isynspec/internal/config"
	"isynspec/internal/logging"
	"isynspec/internal/session"
	"isynspec/internal/synspec"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Workdir.Strategy = config.StrategySpecified
	cfg.Workdir.Path = t.TempDir()
	cfg.Logging.Dir = ""
	return &cfg
}

func newInitializedSession(t *testing.T, cfg *config.Config) *session.Session {
	t.Helper()
	sess, err := session.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sess.Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func testControl() synspec.Control {
	return synspec.Control{
		IMode:  synspec.ModeNormal,
		IDStd:  32,
		IPrin:  0,
		InMod:  synspec.ModelTlusty,
		IFreq:  synspec.SolverDFE,
		Alam0:  4000,
		Alast:  5000,
		Cutof0: 10,
		Relop:  1e-4,
		Space:  0.01,
	}
}

func TestAccessBeforeInit(t *testing.T) {
	sess, err := session.New(newTestConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := sess.Dir(); !errors.Is(err, session.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := sess.WriteControl("fort.55", testControl()); !errors.Is(err, session.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitStagesInputFiles(t *testing.T) {
	modelDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(modelDir, "fort.8"), []byte("model data"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig(t)
	cfg.Session.ModelDir = modelDir
	cfg.Session.InputFiles = []string{"fort.8"}

	sess := newInitializedSession(t, cfg)

	dir, err := sess.Dir()
	if err != nil {
		t.Fatalf("Dir returned error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "fort.8"))
	if err != nil {
		t.Fatalf("staged file missing: %v", err)
	}
	if string(got) != "model data" {
		t.Fatalf("staged content mismatch: got %q", got)
	}
}

func TestInitMissingInputFails(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Session.InputFiles = []string{filepath.Join(t.TempDir(), "absent")}

	sess, err := session.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sess.Init(); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestControlRoundTrip(t *testing.T) {
	sess := newInitializedSession(t, newTestConfig(t))

	want := testControl()
	if err := sess.WriteControl("fort.55", want); err != nil {
		t.Fatalf("WriteControl returned error: %v", err)
	}

	got, err := sess.ReadControl("fort.55")
	if err != nil {
		t.Fatalf("ReadControl returned error: %v", err)
	}
	if got.Alam0 != want.Alam0 || got.Alast != want.Alast || got.IDStd != want.IDStd {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestLineListRoundTrip(t *testing.T) {
	sess := newInitializedSession(t, newTestConfig(t))

	lines := []synspec.Line{
		{
			Alam: 404.4642, Anum: 19.00, GF: -0.324,
			Excl: 0, QL: 2, Excu: 24720.139, QU: 2,
			Agam: 7.56, GS: -5.48, GW: -7.45,
		},
	}
	if err := sess.WriteLineList("fort.19", lines); err != nil {
		t.Fatalf("WriteLineList returned error: %v", err)
	}

	got, err := sess.ReadLineList("fort.19")
	if err != nil {
		t.Fatalf("ReadLineList returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if got[0].Alam != lines[0].Alam {
		t.Fatalf("alam mismatch: got %v, want %v", got[0].Alam, lines[0].Alam)
	}
}

func TestAbundanceRoundTrip(t *testing.T) {
	sess := newInitializedSession(t, newTestConfig(t))

	changes := []synspec.AbundanceChange{
		{AtomicNumber: 26, Abundance: 3.2e-5},
		{AtomicNumber: 12, Abundance: 4.1e-6},
	}
	if err := sess.WriteAbundanceChanges("fort.56", changes); err != nil {
		t.Fatalf("WriteAbundanceChanges returned error: %v", err)
	}

	got, err := sess.ReadAbundanceChanges("fort.56")
	if err != nil {
		t.Fatalf("ReadAbundanceChanges returned error: %v", err)
	}
	if len(got) != 2 || got[0].AtomicNumber != 26 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestReadSpectrum(t *testing.T) {
	sess := newInitializedSession(t, newTestConfig(t))

	dir, err := sess.Dir()
	if err != nil {
		t.Fatal(err)
	}
	data := "  4000.0000 1.234E+15\n  4000.0100 1.235E+15\n"
	if err := os.WriteFile(filepath.Join(dir, "fort.7"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	points, err := sess.ReadSpectrum("fort.7")
	if err != nil {
		t.Fatalf("ReadSpectrum returned error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].Wavelength != 4000.01 {
		t.Fatalf("wavelength mismatch: got %v", points[1].Wavelength)
	}
}

func TestCloseCollectsOutputs(t *testing.T) {
	cfg := newTestConfig(t)
	outDir := filepath.Join(t.TempDir(), "results")
	cfg.Session.OutputDir = outDir
	cfg.Session.OutputFiles = []string{"fort.7", "fort.16"}

	sess, err := session.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sess.Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	dir, err := sess.Dir()
	if err != nil {
		t.Fatal(err)
	}
	// fort.16 deliberately absent; Collect skips it.
	if err := os.WriteFile(filepath.Join(dir, "fort.7"), []byte("spectrum"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "fort.7"))
	if err != nil {
		t.Fatalf("collected file missing: %v", err)
	}
	if string(got) != "spectrum" {
		t.Fatalf("collected content mismatch: got %q", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "fort.16")); !os.IsNotExist(err) {
		t.Fatalf("expected fort.16 absent, stat err = %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	sess, err := session.New(newTestConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sess.Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
}
