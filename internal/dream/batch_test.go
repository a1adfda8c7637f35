package dream

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitzl/esrgan-test/internal/imaging"
	"github.com/bitzl/esrgan-test/internal/progress"
	"github.com/bitzl/esrgan-test/internal/testutil/testlog"
)

func batchExperiments(t *testing.T, model string, n int) []Experiment {
	t.Helper()
	src := NewSeedSource(rand.New(rand.NewSource(1)))
	exps := make([]Experiment, 0, n)
	for i := 0; i < n; i++ {
		noiseSeed, modelSeed := src.DrawPair()
		exp, err := New(noiseSeed, modelSeed, 8, 8, 0, imaging.Color, model, 0, 0)
		require.NoError(t, err)
		exps = append(exps, exp)
	}
	return exps
}

func TestSchedulerRunsBatch(t *testing.T) {
	testlog.Start(t)
	out := t.TempDir()
	exps := batchExperiments(t, weightsFixture(t), 5)

	board := progress.NewBoard()
	scheduler := &Scheduler{Out: out, Iterations: 2, Board: board}
	result, err := scheduler.Run(exps)
	require.NoError(t, err)

	require.Equal(t, 5, result.Experiments)
	require.Equal(t, 2, result.Iterations)
	require.Greater(t, result.Elapsed, time.Duration(0))
	require.LessOrEqual(t, result.PerExperiment(), result.Elapsed)

	// Overall counter: experiments x iterations, no more, no less.
	require.Equal(t, 10, board.Overall().Count())

	// Five distinct config files with five distinct ids, plus outputs.
	ids := map[string]bool{}
	for _, exp := range exps {
		ids[exp.ID()] = true
		_, err := os.Stat(filepath.Join(out, exp.ID()+".toml"))
		require.NoError(t, err)
		for i := 1; i <= 2; i++ {
			_, err := os.Stat(filepath.Join(out, fmt.Sprintf("%s_%02d.png", exp.ID(), i)))
			require.NoError(t, err)
		}
	}
	require.Len(t, ids, 5)
}

func TestSchedulerSequentialStopsAtFirstFailure(t *testing.T) {
	testlog.Start(t)
	out := t.TempDir()
	model := weightsFixture(t)

	good := batchExperiments(t, model, 3)
	bad, err := New(good[1].NoiseSeed, good[1].ModelSeed, 8, 8, 0, imaging.Color, filepath.Join(t.TempDir(), "missing.pth"), 0, 0)
	require.NoError(t, err)
	exps := []Experiment{good[0], bad, good[2]}

	scheduler := &Scheduler{Out: out, Iterations: 1}
	_, err = scheduler.Run(exps)
	require.ErrorIs(t, err, ErrModelLoad)

	// The first experiment's trace survives the failure.
	_, err = os.Stat(filepath.Join(out, good[0].ID()+"_01.png"))
	require.NoError(t, err)
	// The failing experiment's config was durably written before its run.
	_, err = os.Stat(filepath.Join(out, bad.ID()+".toml"))
	require.NoError(t, err)
	// The third experiment was never started.
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	for _, entry := range entries {
		require.False(t, strings.HasPrefix(entry.Name(), good[2].ID()), "unexpected %s", entry.Name())
	}
}

func TestSchedulerParallel(t *testing.T) {
	testlog.Start(t)
	out := t.TempDir()
	exps := batchExperiments(t, weightsFixture(t), 4)

	board := progress.NewBoard()
	scheduler := &Scheduler{Out: out, Iterations: 3, Parallel: true, Board: board}
	result, err := scheduler.Run(exps)
	require.NoError(t, err)
	require.Equal(t, 12, board.Overall().Count())
	require.Equal(t, 4, result.Experiments)

	for _, exp := range exps {
		for i := 1; i <= 3; i++ {
			_, err := os.Stat(filepath.Join(out, fmt.Sprintf("%s_%02d.png", exp.ID(), i)))
			require.NoError(t, err)
		}
	}
}

func TestSchedulerEmptyBatch(t *testing.T) {
	testlog.Start(t)
	scheduler := &Scheduler{Out: t.TempDir(), Iterations: 3}
	result, err := scheduler.Run(nil)
	require.NoError(t, err)
	require.Zero(t, result.Experiments)
	require.Zero(t, result.PerExperiment())
}
