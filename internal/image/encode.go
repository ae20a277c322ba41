// Package image converts image files to and from the text-safe data URL
// form that multimodal chat requests embed inline.
package image

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// EncodeFile reads the image at path and returns it as a base64 data URL.
// The content type is sniffed from the bytes, not the file extension.
func EncodeFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("image file is empty: %s", path)
	}
	contentType := http.DetectContentType(b)
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Decode reverses EncodeFile, returning the original image bytes.
func Decode(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ";base64,")
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, fmt.Errorf("not a base64 data URL")
	}
	b, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	return b, nil
}
