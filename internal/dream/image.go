package dream

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ImageExperiment is the reproducibility record for an image-seeded run: a
// source image plus the same seed, tile, and model fields a synthesized
// experiment carries.
type ImageExperiment struct {
	ImagePath string `toml:"image_path"`
	NoiseSeed uint32 `toml:"noise_seed"`
	ModelSeed uint32 `toml:"model_seed"`
	Tile      int    `toml:"tile"`
	ModelPath string `toml:"model_path"`
}

// NewImageExperiment validates and builds one image-seeded unit.
func NewImageExperiment(imagePath string, noiseSeed, modelSeed uint32, tile int, modelPath string) (ImageExperiment, error) {
	e := ImageExperiment{
		ImagePath: imagePath,
		NoiseSeed: noiseSeed,
		ModelSeed: modelSeed,
		Tile:      tile,
		ModelPath: modelPath,
	}
	if strings.TrimSpace(e.ImagePath) == "" {
		return ImageExperiment{}, fmt.Errorf("%w: missing image path", ErrInvalidParameter)
	}
	if e.Tile < 0 {
		return ImageExperiment{}, fmt.Errorf("%w: tile must not be negative, got %d", ErrInvalidParameter, e.Tile)
	}
	if strings.TrimSpace(e.ModelPath) == "" {
		return ImageExperiment{}, fmt.Errorf("%w: missing model path", ErrInvalidParameter)
	}
	return e, nil
}

// ID folds the source image's name into the seed fingerprint. A directory
// run shares one seed pair across its images, so the name is what keeps
// the ids distinct.
func (e ImageExperiment) ID() string {
	stem := strings.TrimSuffix(filepath.Base(e.ImagePath), filepath.Ext(e.ImagePath))
	return fingerprint(e.NoiseSeed, e.ModelSeed, stem)
}

// Encode writes the record as TOML.
func (e ImageExperiment) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(e); err != nil {
		return fmt.Errorf("dream: encode image experiment: %w", err)
	}
	return nil
}

// WriteFile persists the record as <id>.toml under dir.
func (e ImageExperiment) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, e.ID()+".toml")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("dream: write image experiment %s: %w", path, err)
	}
	if err := e.Encode(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("dream: write image experiment %s: %w", path, err)
	}
	return path, nil
}

// ExpandImagePath turns a source path into image-seeded experiments: one
// for a file, one per contained *.png for a directory. All of them share
// the supplied seed pair. Directory entries are expanded in name order so
// repeated invocations enumerate identically.
func ExpandImagePath(path string, noiseSeed, modelSeed uint32, tile int, modelPath string) ([]ImageExperiment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dream: source image %s: %w", path, err)
	}

	if !info.IsDir() {
		exp, err := NewImageExperiment(path, noiseSeed, modelSeed, tile, modelPath)
		if err != nil {
			return nil, err
		}
		return []ImageExperiment{exp}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("dream: scan %s: %w", path, err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no *.png images in %s", ErrInvalidParameter, path)
	}

	exps := make([]ImageExperiment, 0, len(matches))
	for _, m := range matches {
		exp, err := NewImageExperiment(m, noiseSeed, modelSeed, tile, modelPath)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, nil
}
