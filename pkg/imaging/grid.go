package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ImageIterator single pass image sequence
type ImageIterator interface {
	Next() bool
	Image() image.Image
	Err() error
}

type Size struct {
	Width  int
	Height int
}

type GridSize struct {
	Rows int
	Cols int
}

// Grid paste images row-major into a Cols*Width x Rows*Height canvas.
// No more than Rows*Cols images are pulled from src, empty cells stay black.
func Grid(src ImageIterator, tile Size, grid GridSize) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, grid.Cols*tile.Width, grid.Rows*tile.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	slots := grid.Rows * grid.Cols
	for index := 0; index < slots && src.Next(); index++ {
		img := src.Image()
		x := index % grid.Cols * tile.Width
		y := index / grid.Cols * tile.Height
		// the image keeps its own size, clipped by the canvas
		b := img.Bounds()
		dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.Draw(canvas, dst, img, b.Min, draw.Src)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return canvas, nil
}
