package gridgen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

// DefaultArtifacts is the fixed set of files the simulation executable writes
// into its working directory on every run.
var DefaultArtifacts = []string{"exclurad.out", "exclurad.log"}

// Runner invokes the external simulation executable once per generated input
// file and renames the run's output artifacts with the input file's numeric
// index, so consecutive runs do not clobber each other.
type Runner struct {
	Exe       string        // path to the simulation executable
	WorkDir   string        // directory holding input files; also the run cwd
	Artifacts []string      // output files to rename after each run
	Timeout   time.Duration // per-run limit; 0 means none
}

// RunResult records one invocation.
type RunResult struct {
	Input string
	Index int
	Err   error
}

// RunAll executes the simulation for every input_NNN.dat in WorkDir, in index
// order. A failed run is logged and skipped; the batch continues. The only
// hard errors are a missing executable, an unreadable work directory, and
// context cancellation.
func (r Runner) RunAll(ctx context.Context) ([]RunResult, error) {
	if _, err := exec.LookPath(r.Exe); err != nil {
		return nil, fmt.Errorf("simulation executable: %w", err)
	}
	inputs, err := r.inputFiles()
	if err != nil {
		return nil, err
	}
	artifacts := r.Artifacts
	if len(artifacts) == 0 {
		artifacts = DefaultArtifacts
	}

	results := make([]RunResult, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		idx, ok := inputIndex(in)
		if !ok {
			dataset.Warnf("skipping %s: no numeric index in name", in)
			continue
		}
		start := time.Now()
		runErr := r.runOne(ctx, in)
		if runErr == nil {
			runErr = r.renameArtifacts(artifacts, idx)
		}
		if runErr != nil {
			dataset.Errorf("run %03d (%s) failed: %v", idx, filepath.Base(in), runErr)
		} else {
			dataset.Infof("run %03d done in %s", idx, time.Since(start).Round(time.Millisecond))
		}
		results = append(results, RunResult{Input: in, Index: idx, Err: runErr})
	}
	return results, nil
}

func (r Runner) runOne(ctx context.Context, input string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, r.Exe, filepath.Base(input))
	cmd.Dir = r.WorkDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// renameArtifacts suffixes each expected output with the run index:
// exclurad.out -> exclurad_007.out. A missing artifact fails the run.
func (r Runner) renameArtifacts(artifacts []string, idx int) error {
	for _, a := range artifacts {
		src := filepath.Join(r.WorkDir, a)
		ext := filepath.Ext(a)
		base := strings.TrimSuffix(a, ext)
		dst := filepath.Join(r.WorkDir, fmt.Sprintf("%s_%03d%s", base, idx, ext))
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("rename artifact %s: %w", a, err)
		}
	}
	return nil
}

func (r Runner) inputFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.WorkDir, "input_*.dat"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// inputIndex extracts NNN from input_NNN.dat.
func inputIndex(path string) (int, bool) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(strings.TrimPrefix(name, "input_"), ".dat")
	idx, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return idx, true
}
