package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bitzl/esrgan-test/internal/dream"
	"github.com/bitzl/esrgan-test/internal/progress"
)

func newFromImageCmd() *cobra.Command {
	var (
		out        string
		modelPath  string
		iterations int
		tile       int
	)

	cmd := &cobra.Command{
		Use:   "from-image <path>",
		Short: "Run one experiment per image found at path (file or directory of *.png)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureOutDir(out); err != nil {
				return err
			}

			noiseSeed, modelSeed := dream.SystemSeedSource().DrawPair()
			exps, err := dream.ExpandImagePath(args[0], noiseSeed, modelSeed, tile, modelPath)
			if err != nil {
				return err
			}

			board := progress.NewBoard()
			for _, exp := range exps {
				board.Task(exp.ID(), iterations)
			}
			bar := progressbar.Default(int64(len(exps)*iterations), "Total progress")
			board.OnAdvance(func(task string) {
				bar.Describe(fmt.Sprintf("%s (total %d/%d)", task, board.Overall().Count(), board.Overall().Total()))
				bar.Add(1)
			})

			for _, exp := range exps {
				if _, err := exp.WriteFile(out); err != nil {
					return err
				}
				if err := dream.NewImageRunner(exp).Dream(iterations, out, board.AdvanceFunc(exp.ID())); err != nil {
					return err
				}
			}
			bar.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "out", "path to the output folder")
	cmd.Flags().StringVar(&modelPath, "model-path", defaultModelPath, "path to the model file")
	cmd.Flags().IntVar(&iterations, "iterations", 3, "number of times to upscale the image")
	cmd.Flags().IntVar(&tile, "tile", 512, "size for image tiles (0: no tiling)")
	return cmd
}
