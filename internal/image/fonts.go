package imagepkg

import (
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontHandle is a loaded face. Fallback is set when the TrueType file could
// not be loaded and the built-in bitmap face is used instead.
type FontHandle struct {
	Face     font.Face
	Path     string
	Size     float64
	Fallback bool
}

// LoadFont loads a TrueType face at the given point size. It never fails:
// an unreadable or missing file yields the basicfont fallback, and the
// decision is logged.
func LoadFont(path string, size float64) FontHandle {
	face, err := gg.LoadFontFace(path, size)
	if err != nil {
		zap.L().Warn("font unavailable, falling back to built-in face",
			zap.String("path", path),
			zap.Float64("size", size),
			zap.Error(err),
		)
		return FontHandle{Face: basicfont.Face7x13, Path: path, Size: size, Fallback: true}
	}
	zap.L().Debug("font loaded", zap.String("path", path), zap.Float64("size", size))
	return FontHandle{Face: face, Path: path, Size: size}
}

// measure returns the advance width of s in pixels.
func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// ascent returns the distance from the top of the line to the baseline.
func ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent) / 64
}
