package imagepkg

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "id.png")
	require.NoError(t, imaging.Save(imaging.New(40, 55, color.NRGBA{G: 255, A: 255}), path))

	img, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 55, img.Bounds().Dy())
}

func TestLoadTemplateMissing(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "id.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestLoadTemplateCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	_, err := LoadTemplate(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
}

func TestDecodePhoto(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(50, 50, color.NRGBA{R: 255, A: 255})))

	img, err := DecodePhoto(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())

	_, err = DecodePhoto([]byte("GIF89a garbage"))
	assert.ErrorIs(t, err, ErrInvalidPhoto)
}
