package config

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
)

// loadFavicon reads a PNG from path and renders it as a base64 data URL
// suitable for StatusResponsePayload.Favicon. Uses only the standard
// library: favicon encoding is an explicit external collaborator, not a
// core concern, so no image-processing dependency is pulled in for it.
func loadFavicon(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("not a valid PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
