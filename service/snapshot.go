package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// Grid screenshots wider than this are scaled down before being served
	maxSnapshotWidth = 1600
	// Screenshots are captured at 2x for crisp text
	snapshotScale = 2.0
)

// ResizeSnapshot scales a PNG screenshot down to maxWidth keeping the aspect ratio.
// Images already narrower than maxWidth are returned unchanged.
func ResizeSnapshot(pngData []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = maxSnapshotWidth
	}

	img, err := imaging.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return pngData, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}
