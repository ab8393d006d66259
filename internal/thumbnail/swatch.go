package thumbnail

import (
	"bytes"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/hifi/internal/apperr"
)

// swatchStep samples every nth pixel on both axes.
const swatchStep = 4

// Swatch returns the average colour of an image as "#rrggbb". Fully
// transparent pixels are skipped.
func Swatch(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode swatch: %w: %w", apperr.ErrDecode, err)
	}

	var r, g, b float64
	n := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += swatchStep {
		for x := bounds.Min.X; x < bounds.Max.X; x += swatchStep {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r += c.R
			g += c.G
			b += c.B
			n++
		}
	}
	if n == 0 {
		return "", fmt.Errorf("no opaque pixels: %w", apperr.ErrDecode)
	}
	avg := colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}
	return avg.Clamped().Hex(), nil
}
