package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveBase64Image writes a base64 image (optionally a data URL) under
// uploadDir/folder and returns its public path below /uploads.
func SaveBase64Image(b64, uploadDir, folder string) (string, error) {
	if i := strings.Index(b64, ","); strings.HasPrefix(b64, "data:") && i > 0 {
		b64 = b64[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}

	ext, ok := imageExt[http.DetectContentType(data)]
	if !ok {
		return "", errors.New("unsupported image type")
	}

	dir := filepath.Join(uploadDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", err
	}
	return path.Join("/uploads", folder, filename), nil
}
