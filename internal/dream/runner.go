package dream

import (
	"fmt"
	"image"
	"math/rand"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/bitzl/esrgan-test/internal/imaging"
	"github.com/bitzl/esrgan-test/internal/upscale"
)

// Advance signals one completed iteration to whoever tracks progress.
type Advance func()

// seeder produces the image iteration zero starts from. The two variants
// differ only here; the iteration loop is shared.
type seeder interface {
	seed() (*image.NRGBA, error)
}

// noiseSeeder synthesizes the initial image from the noise seed.
type noiseSeeder struct {
	seed32 uint32
	width  int
	height int
	mode   imaging.ColorMode
}

func (s noiseSeeder) seed() (*image.NRGBA, error) {
	rng := rand.New(rand.NewSource(int64(s.seed32)))
	return imaging.Noise(rng, s.width, s.height, s.mode), nil
}

// fileSeeder loads the initial image from disk.
type fileSeeder struct {
	path string
}

func (s fileSeeder) seed() (*image.NRGBA, error) {
	return imaging.LoadPNG(s.path)
}

// Runner executes one experiment. Each runner is single-use: Dream may be
// called exactly once.
type Runner struct {
	id          string
	source      seeder
	modelPath   string
	modelSeed   uint32
	tile        int
	blur        int
	colorOffset int
	used        bool
}

// NewRunner builds a noise-seeded runner for one experiment.
func NewRunner(exp Experiment) *Runner {
	return &Runner{
		id: exp.ID(),
		source: noiseSeeder{
			seed32: exp.NoiseSeed,
			width:  exp.InitialWidth,
			height: exp.InitialHeight,
			mode:   exp.ColorMode,
		},
		modelPath:   exp.ModelPath,
		modelSeed:   exp.ModelSeed,
		tile:        exp.Tile,
		blur:        exp.Blur,
		colorOffset: exp.ColorOffset,
	}
}

// NewImageRunner builds a runner seeded from an existing image file.
func NewImageRunner(exp ImageExperiment) *Runner {
	return &Runner{
		id:        exp.ID(),
		source:    fileSeeder{path: exp.ImagePath},
		modelPath: exp.ModelPath,
		modelSeed: exp.ModelSeed,
		tile:      exp.Tile,
	}
}

// ID is the output filename stem for this run.
func (r *Runner) ID() string { return r.id }

// Dream performs the full run: load the model once, obtain the seed image,
// then apply exactly iterations upscaling passes. Every completed pass is
// written to outDir as <id>_<index>.png and reported through advance.
// Outputs of passes completed before a failure stay on disk; they are
// valid standalone results.
func (r *Runner) Dream(iterations int, outDir string, advance Advance) error {
	if r.used {
		return ErrRunnerUsed
	}
	r.used = true

	model, err := upscale.Load(r.modelPath, r.modelSeed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	img, err := r.source.seed()
	if err != nil {
		return err
	}

	logger := log.With().Str("dream", r.id).Logger()
	logger.Debug().
		Int("iterations", iterations).
		Int("tile", r.tile).
		Str("model", r.modelPath).
		Msg("dream start")

	for i := 1; i <= iterations; i++ {
		img, err = model.Apply(img, r.tile)
		if err != nil {
			return fmt.Errorf("%w: iteration %d: %v", ErrTransform, i, err)
		}
		img = imaging.BoxBlur(img, r.blur)
		img = imaging.AddOffset(img, r.colorOffset)

		path := filepath.Join(outDir, fmt.Sprintf("%s_%02d.png", r.id, i))
		if err := imaging.SavePNG(path, img); err != nil {
			return err
		}
		logger.Debug().
			Int("iteration", i).
			Int("width", img.Bounds().Dx()).
			Int("height", img.Bounds().Dy()).
			Msg("iteration complete")
		if advance != nil {
			advance()
		}
	}
	return nil
}
