package vision

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxImageBytes caps how large an image file may be.
const MaxImageBytes = 10 << 20

// mimeByExt is the allowlist of supported image formats.
var mimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// Image is a loaded, base64-encoded image ready to hand to an Analyzer
// or return over the wire.
type Image struct {
	Name      string
	MIMEType  string
	SizeBytes int64
	Base64    string
}

// SupportedFormat reports whether the path's extension is an accepted
// image format.
func SupportedFormat(path string) bool {
	_, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadImage reads and base64-encodes an image file, enforcing the format
// allowlist and the size cap.
func LoadImage(path string) (Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Image{}, fmt.Errorf("image file not found: %s", path)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("not a file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeByExt[ext]
	if !ok {
		return Image{}, fmt.Errorf("unsupported image format %q, supported: %s", ext, supportedList())
	}

	if info.Size() > MaxImageBytes {
		return Image{}, fmt.Errorf("image file too large: %.1fMB, maximum 10MB",
			float64(info.Size())/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("reading image: %w", err)
	}

	return Image{
		Name:      filepath.Base(path),
		MIMEType:  mime,
		SizeBytes: info.Size(),
		Base64:    base64.StdEncoding.EncodeToString(data),
	}, nil
}

func supportedList() string {
	exts := make([]string, 0, len(mimeByExt))
	for ext := range mimeByExt {
		exts = append(exts, ext)
	}
	// map order is random; keep the message stable
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
