package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blogicum/internal/config"
	"blogicum/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageMaxUploadSizeMB = 10
	ImageMaxSize                = 2048
	WebPQuality                 = 70
)

// ImageService validates uploaded post images, normalizes them to WebP,
// and writes them under the media directory.
type ImageService struct {
	mediaDir           string
	maxUploadSizeBytes int64
}

// NewImageService constructs an ImageService from configuration.
func NewImageService(cfg *config.Config) *ImageService {
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	if cfg != nil && cfg.ImageMaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
	}
	mediaDir := "./media"
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{
		mediaDir:           mediaDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Save decodes, downsizes, and re-encodes the upload, then writes it to
// the media directory. It returns the public URL path of the stored file.
func (s *ImageService) Save(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("no file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("file too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	if !isAllowedImageMIME(http.DetectContentType(content)) {
		return "", models.NewValidationError("invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return "", models.NewValidationError("unsupported image format")
	}

	resized := resizeToFit(decoded, ImageMaxSize, ImageMaxSize)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, resized, &webp.Options{Quality: WebPQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	name := uuid.NewString() + ".webp"
	if err := os.WriteFile(filepath.Join(s.mediaDir, name), buf.Bytes(), 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/media/" + name, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}
