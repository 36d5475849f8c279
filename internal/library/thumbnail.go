package library

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder

	"github.com/nfnt/resize"
)

// Mod icons render at list size in the UI; 64px keeps the data URIs small.
const iconSize uint = 64

// GenerateThumbnail takes raw icon image data, resizes it, encodes it as a
// Base64 PNG, and returns it as a data URI string. PNG keeps the
// transparency most mod icons rely on.
func GenerateThumbnail(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := resize.Thumbnail(iconSize, iconSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}

	base64Str := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/png;base64,%s", base64Str), nil
}
