package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
)

// maxBackgroundWidth keeps uploaded backgrounds at a print-friendly size
// (300dpi landscape A4) without storing multi-megabyte originals.
const maxBackgroundWidth = 2480

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

// ValidateImage accepts JPEG/PNG up to MaxSize.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// NormalizeBackground downscales oversized backgrounds and re-encodes them
// as PNG, the format the certificate page is composed with.
func (p *ImageProcessor) NormalizeBackground(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	if img.Bounds().Dx() > maxBackgroundWidth {
		img = imaging.Resize(img, maxBackgroundWidth, 0, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("cannot encode background: %w", err)
	}
	return buf.Bytes(), nil
}
