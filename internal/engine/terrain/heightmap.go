package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"

	"github.com/chewxy/math32"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
)

var (
	// ErrInvalidSize is returned for heightmaps with a non-positive dimension
	// or a sample count that does not match width*height.
	ErrInvalidSize = errors.New("invalid heightmap size")
	// ErrUnsupportedFormat is returned when an image format has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported heightmap format")
)

// Heightmap is an immutable grid of normalized heights stored row-major.
type Heightmap struct {
	width   int
	height  int
	samples []float32
}

// NewHeightmap creates a heightmap from row-major samples.
// The slice is copied and each value is clamped to 0..1.
func NewHeightmap(width, height int, samples []float32) (*Heightmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidSize, len(samples), width, height)
	}

	h := &Heightmap{
		width:   width,
		height:  height,
		samples: make([]float32, len(samples)),
	}
	for i, v := range samples {
		h.samples[i] = clampf(v, 0, 1)
	}
	return h, nil
}

// Width returns the number of sample columns.
func (h *Heightmap) Width() int { return h.width }

// Height returns the number of sample rows.
func (h *Heightmap) Height() int { return h.height }

// At returns the sample at column x, row z.
// Coordinates outside the grid are clamped to the nearest edge.
func (h *Heightmap) At(x, z int) float32 {
	x = clampi(x, 0, h.width-1)
	z = clampi(z, 0, h.height-1)
	return h.samples[z*h.width+x]
}

// MinMax returns the lowest and highest sample values.
func (h *Heightmap) MinMax() (lo, hi float32) {
	lo, hi = 1, 0
	for _, v := range h.samples {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}

// HeightmapFromImage reads heights from the red channel of img.
// 8-bit images map 0..255 to 0..1; deeper images use their full range.
func HeightmapFromImage(img image.Image) (*Heightmap, error) {
	b := img.Bounds()
	w, hgt := b.Dx(), b.Dy()
	samples := make([]float32, 0, w*hgt)

	switch src := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				samples = append(samples, float32(src.GrayAt(x, y).Y)/255.0)
			}
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				samples = append(samples, float32(src.NRGBAAt(x, y).R)/255.0)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
				samples = append(samples, float32(c.R)/65535.0)
			}
		}
	}

	return NewHeightmap(w, hgt, samples)
}

// LoadHeightmap decodes a PNG, JPEG, BMP or TIFF file into a heightmap.
func LoadHeightmap(path string) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}

	return HeightmapFromImage(img)
}

// SaveHeightmap writes h as a 16-bit grayscale PNG.
func SaveHeightmap(path string, h *Heightmap) error {
	img := image.NewGray16(image.Rect(0, 0, h.width, h.height))
	for z := 0; z < h.height; z++ {
		for x := 0; x < h.width; x++ {
			v := h.samples[z*h.width+x]
			img.SetGray16(x, z, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heightmap file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}

func clampf(v, min, max float32) float32 {
	if math32.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
