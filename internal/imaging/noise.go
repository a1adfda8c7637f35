package imaging

import (
	"image"
	"math/rand"
)

// Noise synthesizes a w x h seed image from the supplied generator. Pixels
// are drawn row-major so a fixed generator state always yields the same
// image. Grayscale mode draws one value per pixel and replicates it across
// the channels; color mode draws the channels independently.
func Noise(rng *rand.Rand, w, h int, mode ColorMode) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			var r, g, b uint8
			if mode == Grayscale {
				v := uint8(rng.Intn(256))
				r, g, b = v, v, v
			} else {
				r = uint8(rng.Intn(256))
				g = uint8(rng.Intn(256))
				b = uint8(rng.Intn(256))
			}
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = 0xff
		}
	}
	return img
}
