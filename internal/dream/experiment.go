// Package dream owns the experiment orchestration core: reproducible
// configuration, the iterative upscaling loop, and batch scheduling.
package dream

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bitzl/esrgan-test/internal/imaging"
)

// idLen is the number of hex characters kept from the seed fingerprint.
const idLen = 12

// Experiment is the immutable record of everything one run needs to be
// reproduced: construct it once, write it to disk, never mutate it.
type Experiment struct {
	NoiseSeed     uint32            `toml:"noise_seed"`
	ModelSeed     uint32            `toml:"model_seed"`
	InitialWidth  int               `toml:"initial_width"`
	InitialHeight int               `toml:"initial_height"`
	Tile          int               `toml:"tile"`
	ColorMode     imaging.ColorMode `toml:"color_mode"`
	ModelPath     string            `toml:"model_path"`
	Blur          int               `toml:"blur"`
	ColorOffset   int               `toml:"color_offset"`
}

// New validates and builds an Experiment. It performs no I/O.
func New(noiseSeed, modelSeed uint32, width, height, tile int, mode imaging.ColorMode, modelPath string, blur, colorOffset int) (Experiment, error) {
	e := Experiment{
		NoiseSeed:     noiseSeed,
		ModelSeed:     modelSeed,
		InitialWidth:  width,
		InitialHeight: height,
		Tile:          tile,
		ColorMode:     mode,
		ModelPath:     modelPath,
		Blur:          blur,
		ColorOffset:   colorOffset,
	}
	if err := e.validate(); err != nil {
		return Experiment{}, err
	}
	return e, nil
}

func (e Experiment) validate() error {
	if e.InitialWidth <= 0 || e.InitialHeight <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidParameter, e.InitialWidth, e.InitialHeight)
	}
	if e.Tile < 0 {
		return fmt.Errorf("%w: tile must not be negative, got %d", ErrInvalidParameter, e.Tile)
	}
	if e.Blur < 0 {
		return fmt.Errorf("%w: blur must not be negative, got %d", ErrInvalidParameter, e.Blur)
	}
	if !e.ColorMode.Valid() {
		return fmt.Errorf("%w: unknown color mode %q", ErrInvalidParameter, e.ColorMode)
	}
	if strings.TrimSpace(e.ModelPath) == "" {
		return fmt.Errorf("%w: missing model path", ErrInvalidParameter)
	}
	return nil
}

// ID is the experiment's label and output filename stem, a pure function
// of the seed pair.
func (e Experiment) ID() string {
	return fingerprint(e.NoiseSeed, e.ModelSeed, "")
}

// fingerprint hashes the seed pair, plus an optional discriminator for
// image-seeded runs, into a short stable hex id.
func fingerprint(noiseSeed, modelSeed uint32, extra string) string {
	h := sha256.New()
	var buf [8]byte
	buf[0] = byte(noiseSeed >> 24)
	buf[1] = byte(noiseSeed >> 16)
	buf[2] = byte(noiseSeed >> 8)
	buf[3] = byte(noiseSeed)
	buf[4] = byte(modelSeed >> 24)
	buf[5] = byte(modelSeed >> 16)
	buf[6] = byte(modelSeed >> 8)
	buf[7] = byte(modelSeed)
	h.Write(buf[:])
	if extra != "" {
		h.Write([]byte(extra))
	}
	return hex.EncodeToString(h.Sum(nil))[:idLen]
}

// Encode writes the experiment as TOML. The id is not stored; it is
// recomputed from the seeds on load.
func (e Experiment) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(e); err != nil {
		return fmt.Errorf("dream: encode experiment: %w", err)
	}
	return nil
}

// Decode reads one experiment back and re-validates it, so a hand-edited
// file fails the same way a bad constructor call would.
func Decode(r io.Reader) (Experiment, error) {
	var e Experiment
	if _, err := toml.NewDecoder(r).Decode(&e); err != nil {
		return Experiment{}, fmt.Errorf("dream: decode experiment: %w", err)
	}
	if err := e.validate(); err != nil {
		return Experiment{}, err
	}
	return e, nil
}

// LoadFile reads an experiment config from disk.
func LoadFile(path string) (Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		return Experiment{}, fmt.Errorf("dream: open experiment %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile durably persists the experiment as <id>.toml under dir before
// any iteration work starts, so a killed run stays reproducible.
func (e Experiment) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, e.ID()+".toml")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("dream: write experiment %s: %w", path, err)
	}
	if err := e.Encode(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("dream: write experiment %s: %w", path, err)
	}
	return path, nil
}
