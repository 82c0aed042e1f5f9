package terrain

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHeightmapValidation(t *testing.T) {
	_, err := NewHeightmap(0, 4, nil)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewHeightmap(2, 2, []float32{0, 0, 0})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestHeightmapClampsValues(t *testing.T) {
	hm, err := NewHeightmap(2, 1, []float32{-0.5, 1.5})
	require.NoError(t, err)
	require.Equal(t, float32(0), hm.At(0, 0))
	require.Equal(t, float32(1), hm.At(1, 0))
}

func TestHeightmapAtClamps(t *testing.T) {
	hm, err := NewHeightmap(2, 2, []float32{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, err)

	require.Equal(t, float32(0.1), hm.At(-5, -5))
	require.Equal(t, float32(0.2), hm.At(9, 0))
	require.Equal(t, float32(0.3), hm.At(0, 9))
	require.Equal(t, float32(0.4), hm.At(100, 100))

	lo, hi := hm.MinMax()
	require.Equal(t, float32(0.1), lo)
	require.Equal(t, float32(0.4), hi)
}

func TestHeightmapFromGrayImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})

	hm, err := HeightmapFromImage(img)
	require.NoError(t, err)
	require.Equal(t, 2, hm.Width())
	require.Equal(t, 1, hm.Height())
	require.Equal(t, float32(0), hm.At(0, 0))
	require.Equal(t, float32(1), hm.At(1, 0))
}

func TestHeightmapFromRGBAUsesRed(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 51, G: 255, B: 255, A: 255})

	hm, err := HeightmapFromImage(img)
	require.NoError(t, err)
	require.InDelta(t, 0.2, hm.At(0, 0), 1e-6)
}

func TestLoadHeightmapPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "height.png")

	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 40)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	hm, err := LoadHeightmap(path)
	require.NoError(t, err)
	require.Equal(t, 3, hm.Width())
	require.Equal(t, 2, hm.Height())
	require.InDelta(t, 200.0/255.0, hm.At(2, 1), 1e-6)
}

func TestLoadHeightmapErrors(t *testing.T) {
	_, err := LoadHeightmap(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err = LoadHeightmap(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveHeightmapRoundTrip(t *testing.T) {
	hm, err := NewHeightmap(3, 1, []float32{0, 0.5, 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SaveHeightmap(path, hm))

	loaded, err := LoadHeightmap(path)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		require.InDelta(t, hm.At(x, 0), loaded.At(x, 0), 1.0/65535.0)
	}
}

func TestGenerate(t *testing.T) {
	p := GenerateParams{Width: 64, Height: 48, Seed: 3, Frequency: 0.05, Octaves: 3, Alpha: 2, Beta: 2}

	a, err := Generate(p)
	require.NoError(t, err)
	require.Equal(t, 64, a.Width())
	require.Equal(t, 48, a.Height())

	lo, hi := a.MinMax()
	require.Equal(t, float32(0), lo)
	require.Equal(t, float32(1), hi)

	b, err := Generate(p)
	require.NoError(t, err)
	require.Equal(t, a.samples, b.samples, "same seed must produce the same heightmap")

	_, err = Generate(GenerateParams{Width: 0, Height: 10})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestGenerateOctaves(t *testing.T) {
	p := DefaultGenerateParams()
	p.Width, p.Height = 32, 32
	p.Frequency = 0.07

	p.Octaves = 1
	single, err := Generate(p)
	require.NoError(t, err)

	p.Octaves = 4
	layered, err := Generate(p)
	require.NoError(t, err)

	require.NotEqual(t, single.samples, layered.samples, "octave count must reach the noise generator")
}
