package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"aptify/internal/config"
	"aptify/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultPhotoUploadDir       = "/tmp/aptify/uploads/photos"
	DefaultPhotoMaxUploadSizeMB = 5
	PhotoMaxSize                = 512
	PhotoWebPQuality            = 80
)

// PhotoService normalizes and stores profile photos. Every upload is decoded,
// downscaled to fit the photo bounding box, and re-encoded as WebP, so crafted
// payloads never reach disk verbatim.
type PhotoService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewPhotoService returns a new PhotoService.
func NewPhotoService(cfg *config.Config) *PhotoService {
	uploadDir := DefaultPhotoUploadDir
	maxUploadSizeMB := DefaultPhotoMaxUploadSizeMB

	if cfg != nil {
		if cfg.PhotoUploadDir != "" {
			uploadDir = cfg.PhotoUploadDir
		}
		if cfg.PhotoMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.PhotoMaxUploadSizeMB
		}
	}

	return &PhotoService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// PhotoUploadInput carries one uploaded photo.
type PhotoUploadInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// Store validates, normalizes and writes a profile photo, returning the
// relative path to record on the profile.
func (s *PhotoService) Store(in PhotoUploadInput) (string, error) {
	if in.UserID == 0 {
		return "", models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedPhotoMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	normalized := scalePhotoToFit(decoded, PhotoMaxSize)
	encoded, err := encodePhotoWebP(normalized, PhotoWebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	rel := filepath.ToSlash(filepath.Join(photoHash(in.UserID, encoded) + ".webp"))
	abs := filepath.Join(s.uploadDir, rel)
	if err := writePhotoFile(abs, encoded); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

// ResolvePath returns the absolute on-disk path for a stored photo reference.
// The reference is confined to the upload directory to rule out traversal.
func (s *PhotoService) ResolvePath(rel string) (string, error) {
	if rel == "" {
		return "", models.NewNotFoundError("Photo", rel)
	}
	cleaned := filepath.Clean(rel)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", models.NewValidationError("Invalid photo reference")
	}
	abs := filepath.Join(s.uploadDir, cleaned)
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Photo", rel)
		}
		return "", models.NewInternalError(err)
	}
	return abs, nil
}

func scalePhotoToFit(src image.Image, maxSize int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxSize && h <= maxSize) {
		return src
	}

	scale := float64(maxSize) / float64(w)
	if sh := float64(maxSize) / float64(h); sh < scale {
		scale = sh
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

func encodePhotoWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedPhotoMIME(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func photoHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writePhotoFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
