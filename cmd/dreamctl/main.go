package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitzl/esrgan-test/internal/logging"
)

const defaultModelPath = "weights/RealESRGAN_x4plus.pth"

func main() {
	logging.ConfigureRuntime()

	rootCmd := &cobra.Command{
		Use:           "dreamctl",
		Short:         "Iterative super-resolution dreaming",
		Long:          "dreamctl seeds an image with noise (or a file) and feeds it through a super-resolution model over and over, keeping every step reproducible.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newExperimentsCmd(), newFromImageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dreamctl: %v\n", err)
		os.Exit(1)
	}
}

func ensureOutDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", path, err)
	}
	return nil
}
