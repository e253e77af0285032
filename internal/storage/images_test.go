package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Oslo", "oslo"},
		{"New York City", "new-york-city"},
		{"  São Paulo  ", "s-o-paulo"},
		{"---", "airport"},
		{"Tel Aviv-Yafo", "tel-aviv-yafo"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSaveAirportImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	rel, err := store.SaveAirportImage("New York", "photo.PNG", bytes.NewReader([]byte("imagedata")))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, filepath.Join("airports", "new-york-")))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, rel))
	assert.NoError(t, err)
	assert.Equal(t, "imagedata", string(data))
}

func TestSaveAirportImage_UniquePaths(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	first, err := store.SaveAirportImage("Oslo", "a.jpg", bytes.NewReader([]byte("one")))
	assert.NoError(t, err)
	second, err := store.SaveAirportImage("Oslo", "a.jpg", bytes.NewReader([]byte("two")))
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
