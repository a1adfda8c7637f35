package imaging

import "image"

// BoxBlur applies a normalized box filter of the given kernel size to the
// RGB channels, leaving alpha untouched. Even sizes are biased up to the
// next odd size so the kernel stays centered. Sizes below 2 are a no-op
// apart from the copy.
func BoxBlur(img *image.NRGBA, kernel int) *image.NRGBA {
	if kernel%2 == 0 {
		kernel++
	}
	if kernel < 3 {
		out := image.NewNRGBA(img.Bounds())
		copy(out.Pix, img.Pix)
		return out
	}

	radius := kernel / 2
	// Separable: horizontal pass into tmp, vertical pass into out.
	tmp := blurPass(img, radius, true)
	return blurPass(tmp, radius, false)
}

func blurPass(img *image.NRGBA, radius int, horizontal bool) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, n int
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx = clamp(x+d, 0, w-1)
				} else {
					sy = clamp(y+d, 0, h-1)
				}
				i := sy*img.Stride + sx*4
				sumR += int(img.Pix[i])
				sumG += int(img.Pix[i+1])
				sumB += int(img.Pix[i+2])
				n++
			}
			i := y*out.Stride + x*4
			out.Pix[i] = uint8(sumR / n)
			out.Pix[i+1] = uint8(sumG / n)
			out.Pix[i+2] = uint8(sumB / n)
			out.Pix[i+3] = img.Pix[y*img.Stride+x*4+3]
		}
	}
	return out
}

// AddOffset shifts every RGB intensity by offset, clamping to [0, 255].
// Positive offsets brighten, negative darken. Alpha is preserved.
func AddOffset(img *image.NRGBA, offset int) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	if offset == 0 {
		return out
	}
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(clamp(int(out.Pix[i])+offset, 0, 255))
		out.Pix[i+1] = uint8(clamp(int(out.Pix[i+1])+offset, 0, 255))
		out.Pix[i+2] = uint8(clamp(int(out.Pix[i+2])+offset, 0, 255))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
