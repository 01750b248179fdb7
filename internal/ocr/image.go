package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/heic"
)

// PrepareImage decodes an uploaded photo (JPEG, PNG, GIF or HEIC), enhances
// it for recognition and re-encodes it as PNG. The extension allow-list is
// enforced upstream; HEIC is still sniffed here so a mislabeled phone photo
// decodes instead of failing with an opaque format error.
func PrepareImage(imageData []byte) ([]byte, error) {
	var img image.Image
	var err error

	if isHEICFormat(imageData) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			if strings.Contains(err.Error(), "unknown format") || strings.Contains(err.Error(), "unsupported") {
				return nil, fmt.Errorf("unsupported image format. Supported formats: JPEG, PNG, GIF, HEIC. Error: %w", err)
			}
			return nil, fmt.Errorf("decoding image: %w", err)
		}
	}

	return PreparePage(img)
}

// PreparePage enhances a decoded page image and encodes it as PNG for the
// recognition engine.
func PreparePage(img image.Image) ([]byte, error) {
	enhanced := enhanceForRecognition(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, enhanced); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// enhanceForRecognition applies a series of adjustments that make printed
// receipt text easier to recognize: grayscale, higher contrast, sharpening, a
// slight brightness lift and gamma correction.
func enhanceForRecognition(src image.Image) image.Image {
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)
	return img
}

// isHEICFormat checks the ftyp box for HEIC/HEIF brands, since Go's standard
// image package cannot decode the format iPhones produce by default.
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	if string(data[4:8]) != "ftyp" {
		return false
	}
	brand := string(data[8:12])
	return brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1"
}
