package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2wechat/internal/fileutil"
)

// MaxLocalImageSize caps a single inlined image file.
const MaxLocalImageSize = 10 * 1024 * 1024

// Sentinel errors for local image resolution.
var (
	ErrImagePathOutsideDir = errors.New("image path escapes base directory")
	ErrImageTooLarge       = errors.New("image file too large")
	ErrNotAnImage          = errors.New("file is not an image")
)

// ResolveLocalImages returns a copy of images in which every relative file
// path is replaced by a data URI of the file it names, resolved against
// baseDir. URLs, data URIs and absolute paths are copied unchanged.
// If baseDir is empty, relative paths are resolved against the working
// directory.
func ResolveLocalImages(images map[string]string, baseDir string) (map[string]string, error) {
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving image directory: %w", err)
	}

	resolved := make(map[string]string, len(images))
	for desc, src := range images {
		if !isRelativePath(src) {
			resolved[desc] = src
			continue
		}

		absPath := filepath.Join(absBaseDir, src)
		if !isPathUnderDir(absPath, absBaseDir) {
			return nil, fmt.Errorf("%w: %q", ErrImagePathOutsideDir, src)
		}

		uri, err := fileDataURI(absPath)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", desc, err)
		}
		resolved[desc] = uri
	}
	return resolved, nil
}

// fileDataURI reads an image file and encodes it as a base64 data URI.
func fileDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxLocalImageSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, info.Size(), MaxLocalImageSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path checked against base directory
	if err != nil {
		return "", err
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mimeType)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// isRelativePath returns true if the path names a local file to inline.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if fileutil.IsURL(path) ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
