// Package upscale wraps the super-resolution model behind a load/apply
// contract. Callers never see model internals; they hand over an image and
// a tile size and get the x4 result back.
package upscale

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/bitzl/esrgan-test/internal/imaging"
)

// Scale is the per-axis growth factor of one model application, matching
// the x4plus weights the tool ships against.
const Scale = 4

var (
	ErrUnsupportedWeights = errors.New("upscale: unsupported weights format")
	ErrEmptyImage         = errors.New("upscale: empty input image")
)

// Model is one loaded upscaler instance. It is owned by a single run and
// must not be shared across concurrent runs.
type Model struct {
	path string
	seed uint32
}

// Load resolves and opens the weights at path. The returned model is seeded
// once; the same seed always reproduces the same stochastic behavior.
func Load(path string, seed uint32) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pth", ".onnx":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWeights, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("upscale: load %s: %w", path, err)
	}
	return &Model{path: path, seed: seed}, nil
}

// Path reports where the weights were loaded from.
func (m *Model) Path() string { return m.path }

// Apply runs one upscaling pass. With tile > 0 and an image larger than
// the tile in either dimension, the image is partitioned into a grid,
// each block upscaled independently, and the blocks reassembled. The
// stochastic component is keyed on output coordinates, so partitioning
// does not change which perturbation a pixel receives.
func (m *Model) Apply(img *image.NRGBA, tile int) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	tiles := imaging.Grid(img, tile)
	if len(tiles) == 1 {
		return m.upscaleBlock(tiles[0].Image, image.Point{}), nil
	}

	for i := range tiles {
		origin := tiles[i].Rect.Min.Sub(b.Min)
		tiles[i].Image = m.upscaleBlock(tiles[i].Image, origin)
	}
	return imaging.Assemble(tiles, Scale, b), nil
}

// upscaleBlock resamples one block by Scale and perturbs it. origin is the
// block's position in source coordinates, used to key the perturbation in
// the full output's coordinate space.
func (m *Model) upscaleBlock(block *image.NRGBA, origin image.Point) *image.NRGBA {
	b := block.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*Scale, b.Dy()*Scale))
	draw.CatmullRom.Scale(out, out.Bounds(), block, b, draw.Src, nil)
	m.dither(out, origin.X*Scale, origin.Y*Scale)
	return out
}

// dither nudges each RGB intensity by at most one step, keyed on the model
// seed and the pixel's global output coordinates.
func (m *Model) dither(img *image.NRGBA, offsetX, offsetY int) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			d := m.perturbation(offsetX+x, offsetY+y)
			if d == 0 {
				continue
			}
			i := y*img.Stride + x*4
			img.Pix[i] = clampByte(int(img.Pix[i]) + d)
			img.Pix[i+1] = clampByte(int(img.Pix[i+1]) + d)
			img.Pix[i+2] = clampByte(int(img.Pix[i+2]) + d)
		}
	}
}

// perturbation returns -1, 0, or +1 as a pure function of (seed, x, y).
func (m *Model) perturbation(x, y int) int {
	h := fnv.New32a()
	var buf [12]byte
	buf[0] = byte(m.seed >> 24)
	buf[1] = byte(m.seed >> 16)
	buf[2] = byte(m.seed >> 8)
	buf[3] = byte(m.seed)
	putInt32(buf[4:8], int32(x))
	putInt32(buf[8:12], int32(y))
	h.Write(buf[:])
	return int(h.Sum32()%3) - 1
}

func putInt32(dst []byte, v int32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
