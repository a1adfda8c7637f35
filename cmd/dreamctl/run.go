package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bitzl/esrgan-test/internal/dream"
	"github.com/bitzl/esrgan-test/internal/progress"
)

func newRunCmd() *cobra.Command {
	var (
		iterations int
		out        string
	)

	cmd := &cobra.Command{
		Use:   "run <experiment.toml>",
		Short: "Run a single experiment from a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureOutDir(out); err != nil {
				return err
			}
			exp, err := dream.LoadFile(args[0])
			if err != nil {
				return err
			}
			// Audit copy next to the outputs, before any work starts.
			cfgPath, err := exp.WriteFile(out)
			if err != nil {
				return err
			}

			board := progress.NewBoard()
			board.Task(exp.ID(), iterations)
			bar := progressbar.Default(int64(iterations), fmt.Sprintf("Upscaling %s (as %s)", args[0], cfgPath))
			board.OnAdvance(func(string) { bar.Add(1) })

			return dream.NewRunner(exp).Dream(iterations, out, board.AdvanceFunc(exp.ID()))
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 4, "number of upscaling iterations to run")
	cmd.Flags().StringVar(&out, "out", "out", "path to the output folder")
	return cmd
}
