package service

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 220, B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestResizeSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		maxWidth   int
		wantWidth  int
		wantHeight int
	}{
		{name: "wide image is scaled down", width: 2000, height: 1000, maxWidth: 1000, wantWidth: 1000, wantHeight: 500},
		{name: "narrow image is untouched", width: 400, height: 300, maxWidth: 1000, wantWidth: 400, wantHeight: 300},
		{name: "zero max width uses the default", width: 3200, height: 800, maxWidth: 0, wantWidth: maxSnapshotWidth, wantHeight: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResizeSnapshot(encodePNG(t, tt.width, tt.height), tt.maxWidth)
			require.NoError(t, err)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, "png", format)
			assert.Equal(t, tt.wantWidth, cfg.Width)
			assert.Equal(t, tt.wantHeight, cfg.Height)
		})
	}
}

func TestResizeSnapshot_InvalidImage(t *testing.T) {
	_, err := ResizeSnapshot([]byte("not an image"), 100)
	assert.Error(t, err)
}
