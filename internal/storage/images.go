// Package storage saves uploaded airport images on local disk. Files
// are named after the airport's city with a random suffix so repeated
// uploads never collide or overwrite each other.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes images beneath a base directory.
type ImageStore struct {
	baseDir string
}

func NewImageStore(baseDir string) *ImageStore {
	return &ImageStore{baseDir: baseDir}
}

// Slugify lowercases s and replaces every run of non-alphanumeric
// characters with a single dash, trimming dashes at both ends.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	out := b.String()
	if out == "" {
		out = "airport"
	}
	return out
}

// SaveAirportImage stores the image under
// airports/<slug(city)>-<uuid><ext> relative to the base directory and
// returns that relative path for persistence on the airport row. The
// extension is taken from the uploaded filename.
func (s *ImageStore) SaveAirportImage(city, filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.Join("airports", fmt.Sprintf("%s-%s%s", Slugify(city), uuid.NewString(), ext))
	full := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}
	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Remove the partial file so a failed upload leaves nothing behind.
		_ = os.Remove(full)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return rel, nil
}
