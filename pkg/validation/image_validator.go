package validation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/pkg/models"
)

// Upload formats accepted by the image tool.
var (
	DefaultImageExtensions = []string{".jpg", ".jpeg", ".png"}
	DefaultImageMIMETypes  = []string{"image/jpeg", "image/png"}
)

// ImageValidator checks uploaded images before they reach the provider.
type ImageValidator struct {
	allowedExtensions []string
	allowedMIMETypes  []string
	maxBytes          int64
}

func NewImageValidator(maxBytes int64) *ImageValidator {
	return &ImageValidator{
		allowedExtensions: DefaultImageExtensions,
		allowedMIMETypes:  DefaultImageMIMETypes,
		maxBytes:          maxBytes,
	}
}

// ValidateUpload verifies the extension, the sniffed content type and that
// the image header decodes. On success the MIME type is set from the bytes,
// not from what the client declared.
func (v *ImageValidator) ValidateUpload(img *models.UploadedImage) error {
	if img == nil || len(img.Data) == 0 {
		return apperrors.NewValidationError("please upload an image", nil)
	}
	if v.maxBytes > 0 && int64(len(img.Data)) > v.maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", v.maxBytes), nil)
	}

	if img.Filename != "" {
		ext := strings.ToLower(filepath.Ext(img.Filename))
		if !contains(v.allowedExtensions, ext) {
			return apperrors.NewValidationError(
				fmt.Sprintf("unsupported file type %q, choose a jpg, jpeg or png image", ext), nil)
		}
	}

	mimeType := http.DetectContentType(img.Data)
	if !contains(v.allowedMIMETypes, mimeType) {
		return apperrors.NewValidationError(
			fmt.Sprintf("unsupported image content %q", mimeType), nil)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
		return apperrors.NewValidationError("image could not be decoded", err)
	}

	img.MIMEType = mimeType
	return nil
}

// DataURL renders image bytes as an inline data: URL for previews.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
