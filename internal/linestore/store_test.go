package linestore_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"isynspec/internal/linestore"
	"isynspec/internal/synspec"
)

func newTestStore(t *testing.T) *linestore.Store {
	t.Helper()
	store, err := linestore.Open(filepath.Join(t.TempDir(), "lines.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleLines() []synspec.Line {
	return []synspec.Line{
		{
			Alam: 404.4642, Anum: 19.00, GF: -0.324,
			Excl: 0, QL: 2, Excu: 24720.139, QU: 2,
			Agam: 7.56, GS: -5.48, GW: -7.45,
		},
		{
			Alam: 404.5824, Anum: 26.00, GF: -2.348,
			Excl: 11976.239, QL: 2, Excu: 36686.176, QU: 2,
			Agam: 8.23, GS: -6.22, GW: -7.84,
		},
		{
			Alam: 404.7208, Anum: 19.00, GF: -0.666,
			Excl: 0, QL: 2, Excu: 24701.382, QU: 2,
			Agam: 7.56, GS: -5.48, GW: -7.45,
			Broadening: &synspec.Broadening{
				WGR1: 0.05, WGR2: 0.1, WGR3: 0.15, WGR4: 0.2,
				ILWN: 0, IUN: 0, IPRF: 1,
			},
		},
	}
}

func TestImportAndLists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, "vald-short", sampleLines()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	infos, err := store.Lists(ctx)
	if err != nil {
		t.Fatalf("Lists returned error: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 list, got %d", len(infos))
	}
	info := infos[0]
	if info.Name != "vald-short" || info.Lines != 3 {
		t.Fatalf("unexpected list info: %+v", info)
	}
	if info.MinAlam != 404.4642 || info.MaxAlam != 404.7208 {
		t.Fatalf("wavelength bounds mismatch: %+v", info)
	}
	if info.ImportedAt.IsZero() {
		t.Fatal("expected import timestamp")
	}
}

func TestImportReplacesExistingList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, "vald-short", sampleLines()); err != nil {
		t.Fatalf("first Import returned error: %v", err)
	}
	if err := store.Import(ctx, "vald-short", sampleLines()[:1]); err != nil {
		t.Fatalf("second Import returned error: %v", err)
	}

	infos, err := store.Lists(ctx)
	if err != nil {
		t.Fatalf("Lists returned error: %v", err)
	}
	if len(infos) != 1 || infos[0].Lines != 1 {
		t.Fatalf("expected replaced list with 1 line, got %+v", infos)
	}
}

func TestSelectRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, "vald-short", sampleLines()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	lines, err := store.SelectRange(ctx, "vald-short", 404.5, 404.8)
	if err != nil {
		t.Fatalf("SelectRange returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines in range, got %d", len(lines))
	}
	if lines[0].Alam != 404.5824 || lines[1].Alam != 404.7208 {
		t.Fatalf("lines out of order: %v, %v", lines[0].Alam, lines[1].Alam)
	}

	b := lines[1].Broadening
	if b == nil {
		t.Fatal("expected broadening data on second line")
	}
	if b.WGR2 != 0.1 || b.IPRF != 1 {
		t.Fatalf("broadening mismatch: %+v", b)
	}
	if lines[0].Broadening != nil {
		t.Fatal("unexpected broadening on first line")
	}
}

func TestSelectRangeUnknownList(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SelectRange(context.Background(), "missing", 0, 1)
	if !errors.Is(err, linestore.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleLines()
	if err := store.Import(ctx, "vald-short", want); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	var buf strings.Builder
	if err := store.Export(ctx, "vald-short", &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	got, err := synspec.ReadLineList(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-read exported list: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range got {
		if got[i].Alam != want[i].Alam {
			t.Fatalf("line %d wavelength mismatch: got %v, want %v", i, got[i].Alam, want[i].Alam)
		}
	}
	if got[2].Broadening == nil {
		t.Fatal("expected broadening preserved through export")
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, "vald-short", sampleLines()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if err := store.Delete(ctx, "vald-short"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(ctx, "vald-short"); !errors.Is(err, linestore.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}

	infos, err := store.Lists(ctx)
	if err != nil {
		t.Fatalf("Lists returned error: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected empty store, got %+v", infos)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.db")

	first, err := linestore.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := first.Import(context.Background(), "vald-short", sampleLines()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second, err := linestore.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer second.Close()

	infos, err := second.Lists(context.Background())
	if err != nil {
		t.Fatalf("Lists returned error: %v", err)
	}
	if len(infos) != 1 || infos[0].Lines != 3 {
		t.Fatalf("expected persisted list, got %+v", infos)
	}
}
