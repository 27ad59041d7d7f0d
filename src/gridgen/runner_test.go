package gridgen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeSimulator writes a shell script that behaves like the simulation
// executable: reads an input file name and drops the fixed artifact set.
func fakeSimulator(t *testing.T, dir string, fail bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fake simulator")
	}
	body := "#!/bin/sh\necho \"delta 1.0\" > exclurad.out\necho \"run ok\" > exclurad.log\n"
	if fail {
		body = "#!/bin/sh\nexit 3\n"
	}
	path := filepath.Join(dir, "fakesim.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake simulator: %v", err)
	}
	return path
}

func TestRunAll_RenamesArtifactsByIndex(t *testing.T) {
	dir := t.TempDir()
	if _, err := Generate(GridSpec{
		WValues:   []float64{1.6, 1.7},
		Q2Values:  []float64{0.4},
		CosValues: []float64{0.0},
		OutDir:    dir,
		Params:    DefaultRunParams,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	exe := fakeSimulator(t, dir, false)
	results, err := Runner{Exe: exe, WorkDir: dir}.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d want 2", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("run %d failed: %v", res.Index, res.Err)
		}
	}
	for _, want := range []string{"exclurad_000.out", "exclurad_000.log", "exclurad_001.out", "exclurad_001.log"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Fatalf("expected artifact %s: %v", want, err)
		}
	}
	// Unsuffixed artifacts must be gone after renaming.
	if _, err := os.Stat(filepath.Join(dir, "exclurad.out")); err == nil {
		t.Fatalf("unrenamed artifact left behind")
	}
}

func TestRunAll_FailedRunContinuesBatch(t *testing.T) {
	dir := t.TempDir()
	if _, err := Generate(GridSpec{
		WValues:   []float64{1.6, 1.7},
		Q2Values:  []float64{0.4},
		CosValues: []float64{0.0},
		OutDir:    dir,
		Params:    DefaultRunParams,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	exe := fakeSimulator(t, dir, true)
	results, err := Runner{Exe: exe, WorkDir: dir}.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll should not abort on per-run failure: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("batch should continue past failures: got %d results", len(results))
	}
	for _, res := range results {
		if res.Err == nil {
			t.Fatalf("run %d should have failed", res.Index)
		}
	}
}

func TestRunAll_MissingExecutable(t *testing.T) {
	dir := t.TempDir()
	_, err := Runner{Exe: filepath.Join(dir, "nope"), WorkDir: dir}.RunAll(context.Background())
	if err == nil {
		t.Fatalf("expected hard error for missing executable")
	}
}
