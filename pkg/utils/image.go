package utils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/instill-ai/detection-backend/pkg/datamodel"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

// SupportedImageTypes lists the content types LoadImage decodes
var SupportedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/tiff",
	"image/webp",
}

// ErrUnsupportedImage is returned for content that is not a supported image
var ErrUnsupportedImage = fmt.Errorf("unsupported image format")

// LoadImage reads the file at path and decodes it into a 3-channel tensor at
// its original resolution. A missing file yields an error wrapping
// fs.ErrNotExist.
func LoadImage(ctx context.Context, path string) (*datamodel.ImageTensor, error) {
	logger, _ := custom_logger.GetZapLogger(ctx)
	logger.Debug("Loading image", zap.String("path", path))

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := mimetype.Detect(b)
	if !mimetype.EqualsAny(mimeType.String(), SupportedImageTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType.String())
	}

	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s image: %w", mimeType.String(), err)
	}

	return ToImageTensor(img), nil
}

// ToImageTensor copies img into RGB layout, dropping any alpha channel.
func ToImageTensor(img image.Image) *datamodel.ImageTensor {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]uint8, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}

	return &datamodel.ImageTensor{
		Height: h,
		Width:  w,
		Pix:    pix,
	}
}
