package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bitzl/esrgan-test/internal/dream"
	"github.com/bitzl/esrgan-test/internal/imaging"
	"github.com/bitzl/esrgan-test/internal/progress"
)

func newExperimentsCmd() *cobra.Command {
	var (
		modelPath     string
		out           string
		iterations    int
		experiments   int
		colorMode     string
		tile          int
		blur          int
		colorOffset   int
		initialWidth  int
		initialHeight int
		comment       string
		parallel      bool
	)

	cmd := &cobra.Command{
		Use:   "experiments",
		Short: "Run a batch of noise-seeded experiments with shared hyperparameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := imaging.ParseColorMode(colorMode)
			if err != nil {
				return err
			}
			if comment != "" {
				out = out + "-" + comment
			}
			if err := ensureOutDir(out); err != nil {
				return err
			}

			seeds := dream.SystemSeedSource()
			noiseSeeds := make([]uint32, experiments)
			modelSeeds := make([]uint32, experiments)
			for i := range noiseSeeds {
				noiseSeeds[i] = seeds.Draw()
			}
			for i := range modelSeeds {
				modelSeeds[i] = seeds.Draw()
			}

			exps := make([]dream.Experiment, 0, experiments)
			for i := 0; i < experiments; i++ {
				exp, err := dream.New(noiseSeeds[i], modelSeeds[i], initialWidth, initialHeight, tile, mode, modelPath, blur, colorOffset)
				if err != nil {
					return err
				}
				exps = append(exps, exp)
			}

			board := progress.NewBoard()
			bar := progressbar.Default(int64(experiments*iterations), "experiments")
			board.OnAdvance(func(task string) {
				bar.Describe("experiment " + task)
				bar.Add(1)
			})

			scheduler := &dream.Scheduler{
				Out:        out,
				Iterations: iterations,
				Parallel:   parallel,
				Board:      board,
			}
			result, err := scheduler.Run(exps)
			if err != nil {
				return err
			}
			bar.Finish()
			fmt.Printf("Finished %d experiments in %.2f seconds (%.2f s/experiment)\n",
				result.Experiments, result.Elapsed.Seconds(), result.PerExperiment().Seconds())
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model-path", defaultModelPath, "path to the model file")
	cmd.Flags().StringVar(&out, "out", "out", "path to the output folder")
	cmd.Flags().IntVar(&iterations, "iterations", 3, "number of times to upscale the image")
	cmd.Flags().IntVar(&experiments, "experiments", 1, "number of times to run the experiment")
	cmd.Flags().StringVar(&colorMode, "color-mode", string(imaging.Color), "number of color channels in the image (grayscale or color)")
	cmd.Flags().IntVar(&tile, "tile", 512, "size for image tiles (0: no tiling)")
	cmd.Flags().IntVar(&blur, "blur", 3, "blur kernel size")
	cmd.Flags().IntVar(&colorOffset, "color-offset", 0, "offset to make the image brighter or darker")
	cmd.Flags().IntVar(&initialWidth, "initial-width", 16, "initial width of the image")
	cmd.Flags().IntVar(&initialHeight, "initial-height", 16, "initial height of the image")
	cmd.Flags().StringVar(&comment, "comment", "", "comment to add to the output folder name")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run experiments concurrently")
	return cmd
}
