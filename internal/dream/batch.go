package dream

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bitzl/esrgan-test/internal/progress"
)

// BatchResult aggregates wall-clock accounting for one scheduler run.
type BatchResult struct {
	Experiments int
	Iterations  int
	Elapsed     time.Duration
}

// PerExperiment is the mean wall-clock duration of one experiment.
func (r BatchResult) PerExperiment() time.Duration {
	if r.Experiments == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Experiments)
}

// Scheduler fans a list of experiments out to runners. Experiments are
// independent: each gets its config written before its runner starts, its
// own progress task, and a share of the board's overall counter.
//
// Failure policy: in sequential mode the first experiment error is
// returned and the remaining experiments are not started; everything
// already written stays on disk. In parallel mode all experiments run to
// completion and the first error is returned afterwards.
type Scheduler struct {
	Out        string
	Iterations int
	Parallel   bool
	Board      *progress.Board
}

// Run executes every experiment and reports batch timing. The board's
// overall counter ends at experiments x iterations when all runs succeed.
func (s *Scheduler) Run(exps []Experiment) (BatchResult, error) {
	board := s.Board
	if board == nil {
		board = progress.NewBoard()
	}
	for _, exp := range exps {
		board.Task(exp.ID(), s.Iterations)
	}

	logger := log.With().Str("batch", uuid.NewString()).Logger()
	logger.Info().
		Int("experiments", len(exps)).
		Int("iterations", s.Iterations).
		Bool("parallel", s.Parallel).
		Msg("batch start")

	start := time.Now()
	var err error
	if s.Parallel {
		var g errgroup.Group
		for _, exp := range exps {
			exp := exp
			g.Go(func() error { return s.runOne(exp, board) })
		}
		err = g.Wait()
	} else {
		for _, exp := range exps {
			if err = s.runOne(exp, board); err != nil {
				break
			}
		}
	}

	result := BatchResult{
		Experiments: len(exps),
		Iterations:  s.Iterations,
		Elapsed:     time.Since(start),
	}
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", result.Elapsed).Msg("batch failed")
		return result, err
	}
	logger.Info().
		Dur("elapsed", result.Elapsed).
		Dur("per_experiment", result.PerExperiment()).
		Msg("batch complete")
	return result, nil
}

func (s *Scheduler) runOne(exp Experiment, board *progress.Board) error {
	if _, err := exp.WriteFile(s.Out); err != nil {
		return err
	}
	return NewRunner(exp).Dream(s.Iterations, s.Out, board.AdvanceFunc(exp.ID()))
}
