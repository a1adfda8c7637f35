package imaging

import (
	"image"
	"image/draw"
)

// Tile is one edge-aligned block of a larger image. Rect is the block's
// position in the source image's coordinate space.
type Tile struct {
	Rect  image.Rectangle
	Image *image.NRGBA
}

// Grid partitions img into tiles of the given edge length, last row and
// column smaller when the dimensions do not divide evenly. A size of zero,
// or a size that covers the whole image, yields a single tile over the full
// bounds so callers take the same path as an untiled call.
func Grid(img *image.NRGBA, size int) []Tile {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return []Tile{{Rect: b, Image: img}}
	}

	var tiles []Tile
	for y := b.Min.Y; y < b.Max.Y; y += size {
		for x := b.Min.X; x < b.Max.X; x += size {
			r := image.Rect(x, y, min(x+size, b.Max.X), min(y+size, b.Max.Y))
			tiles = append(tiles, Tile{Rect: r, Image: Crop(img, r)})
		}
	}
	return tiles
}

// Assemble stitches upscaled tiles back into one image. Each tile's Rect
// still refers to source coordinates; scale is the per-axis growth factor
// applied by the upscaler, so tile (x, y) lands at (x*scale, y*scale).
func Assemble(tiles []Tile, scale int, srcBounds image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, srcBounds.Dx()*scale, srcBounds.Dy()*scale))
	for _, t := range tiles {
		origin := image.Pt((t.Rect.Min.X-srcBounds.Min.X)*scale, (t.Rect.Min.Y-srcBounds.Min.Y)*scale)
		dst := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(t.Rect.Dx()*scale, t.Rect.Dy()*scale))}
		draw.Draw(out, dst, t.Image, t.Image.Bounds().Min, draw.Src)
	}
	return out
}

// Crop copies the region r of img into a fresh zero-origin image.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// ToNRGBA converts any decoded image into the working pixel format.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
