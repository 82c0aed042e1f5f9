package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/quadterrain/internal/engine/quadtree"
)

// ScreenshotCapture writes debug images to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// CaptureFromImage saves img and returns the file name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// CaptureFromPixels saves RGBA pixel data read back from OpenGL.
// pixels must hold width*height*4 bytes. The image is flipped vertically
// since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// Visibility map colors.
var (
	culledColor  = color.NRGBA{R: 40, G: 40, B: 48, A: 255}
	visibleColor = color.NRGBA{R: 90, G: 200, B: 110, A: 255}
	borderColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// VisibilityMap renders a top-down map of the tree's leaves: one pixel per
// heightmap sample, visible leaves shaded by height and culled leaves dark,
// with leaf borders outlined.
func VisibilityMap(tree *quadtree.Tree, visible []*quadtree.Node) *image.NRGBA {
	ts := tree.Config.TileSize
	size := tree.Root.Bounds.Size()
	w, h := int(size[0]/ts), int(size[2]/ts)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	shown := make(map[*quadtree.Node]bool, len(visible))
	for _, n := range visible {
		shown[n] = true
	}

	for _, leaf := range tree.Leaves() {
		t := leaf.Tile
		x0, z0 := int(leaf.Bounds.Min[0]/ts), int(leaf.Bounds.Min[2]/ts)
		x1, z1 := min(int(leaf.Bounds.Max[0]/ts), w), min(int(leaf.Bounds.Max[2]/ts), h)

		for z := z0; z < z1; z++ {
			for x := x0; x < x1; x++ {
				c := culledColor
				if shown[leaf] {
					c = visibleColor
					if vi := (z-t.OriginZ)*t.Columns + (x - t.OriginX); vi >= 0 && vi < len(t.Vertices) {
						shade := 0.5 + 0.5*t.Vertices[vi].Position[1]
						c.R = uint8(float32(c.R) * shade)
						c.G = uint8(float32(c.G) * shade)
						c.B = uint8(float32(c.B) * shade)
					}
				}
				if x == x0 || z == z0 {
					c = borderColor
				}
				img.SetNRGBA(x, z, c)
			}
		}
	}
	return img
}
