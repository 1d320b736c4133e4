package avatar

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
)

// DefaultFallback is used for users without an entry in the table.
const DefaultFallback = "/images/default.jpeg"

// defaultImages is the built-in user id -> image mapping for the staff who
// appear in the activity export.
var defaultImages = map[string]string{
	"1":  "/images/Support-Abdu.jpg",
	"4":  "/images/instructor_fawzy.jpg",
	"5":  "/images/Support-Aya.jpg",
	"6":  "/images/instructor_aml.jpg",
	"9":  "/images/esraa.jpg",
	"10": "/images/sohir.jpg",
	"12": "/images/lina.jpg",
	"15": "/images/mohamed kamel.jpg",
	"24": "/images/Abdu.jpg",
	"53": "/images/Adham Usama.jpg",
}

// Table resolves a user id to an image reference. It is static configuration
// and safe for concurrent reads.
type Table struct {
	images   map[string]string
	fallback string
}

// Default returns the built-in table.
func Default() *Table {
	return New(defaultImages, DefaultFallback)
}

// New builds a table from images; an empty fallback means DefaultFallback.
func New(images map[string]string, fallback string) *Table {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Table{images: maps.Clone(images), fallback: fallback}
}

// file is the on-disk JSON shape accepted by LoadFile.
type file struct {
	Fallback string            `json:"fallback"`
	Images   map[string]string `json:"images"`
}

// LoadFile reads a JSON table of the form
//
//	{"fallback": "/images/default.jpeg", "images": {"4": "/images/fawzy.jpg"}}
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar table: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode avatar table %s: %w", path, err)
	}
	return New(f.Images, f.Fallback), nil
}

// Lookup returns the image for userID, or the fallback when it has none.
func (t *Table) Lookup(userID string) string {
	if img, ok := t.images[userID]; ok && img != "" {
		return img
	}
	return t.fallback
}

func (t *Table) Len() int {
	return len(t.images)
}
