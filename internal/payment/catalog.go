// Package payment resolves the QR code a user scans to pay for a contest.
//
// No payment is ever verified here. The "payment completed" checkbox that the
// QR unlocks is self-reported by the user and is accepted as-is.
package payment

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	imagepkg "github.com/kreeda/idcard/internal/image"
	"github.com/kreeda/idcard/internal/registration"
	"github.com/kreeda/idcard/internal/util"
)

var ErrQRNotFound = errors.New("QR code not found for selected contest")

// Source is where a contest's QR comes from. Asset wins when the file exists;
// PaymentURI is encoded into a generated QR otherwise.
type Source struct {
	Asset      string
	PaymentURI string
}

type Catalog struct {
	sources map[registration.Contest]Source
}

func NewCatalog(sources map[registration.Contest]Source) *Catalog {
	return &Catalog{sources: sources}
}

// Available reports whether a QR can be shown for contest. ContestNone and
// unknown contests are never available.
func (c *Catalog) Available(contest registration.Contest) bool {
	src, ok := c.sources[contest]
	if !ok {
		return false
	}
	return util.FileExists(src.Asset) || src.PaymentURI != ""
}

// QR returns the image bytes and content type for contest. size only
// applies to generated codes.
func (c *Catalog) QR(contest registration.Contest, size int) ([]byte, string, error) {
	src, ok := c.sources[contest]
	if !ok {
		return nil, "", fmt.Errorf("%s: %w", contest, ErrQRNotFound)
	}
	if util.FileExists(src.Asset) {
		b, err := os.ReadFile(src.Asset)
		if err != nil {
			return nil, "", fmt.Errorf("read qr asset %s -> %w", src.Asset, err)
		}
		return b, http.DetectContentType(b), nil
	}
	if src.PaymentURI != "" {
		b, err := imagepkg.GenerateQRPNG(src.PaymentURI, size)
		if err != nil {
			return nil, "", fmt.Errorf("generate qr for %s -> %w", contest, err)
		}
		return b, "image/png", nil
	}
	return nil, "", fmt.Errorf("%s: %w", contest, ErrQRNotFound)
}
