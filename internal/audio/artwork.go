package audio

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"
)

// coverExtensions are tried in order when looking for an album cover.
var coverExtensions = []string{".jpg", ".jpeg", ".png"}

// CoverPath returns the cover image of albumID under <songs>/covers, or ""
// when the album has none.
func (l *Locator) CoverPath(albumID int) string {
	base := filepath.Join(l.root, "covers", strconv.Itoa(albumID))
	for _, ext := range coverExtensions {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

// PrepareCover scales an image to fit within maxSize x maxSize, keeping its
// aspect ratio, and encodes it as JPEG for embedding. Images already small
// enough are only re-encoded. A maxSize of 0 or less keeps the original
// dimensions.
func PrepareCover(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width >= height {
			height = max(1, height*maxSize/width)
			width = maxSize
		} else {
			width = max(1, width*maxSize/height)
			height = maxSize
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
