package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/disintegration/imaging"
)

var (
	ErrTemplateNotFound = errors.New("background template not found")
	ErrInvalidPhoto     = errors.New("photo is not a decodable image")
)

// LoadTemplate opens the card background from disk.
func LoadTemplate(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("open template %s -> %w", path, err)
	}
	return img, nil
}

// DecodePhoto decodes uploaded photo bytes (png or jpeg), honouring EXIF orientation.
func DecodePhoto(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	return img, nil
}
