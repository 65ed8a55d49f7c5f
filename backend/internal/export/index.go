// Package export writes the stable public JSON index of the tool catalog.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aiotoolsuite/backend/internal/catalog"
)

// Entry is one record of the public index. Field names and order are a stable
// on-disk format consumed outside this repository.
type Entry struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Category         string   `json:"category"`
	ShortDescription string   `json:"shortDescription"`
	Tags             []string `json:"tags"`
}

// Entries projects views to index entries, keeping their order
func Entries(views []catalog.PublicToolView) []Entry {
	entries := make([]Entry, 0, len(views))
	for _, v := range views {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, Entry{
			ID:               v.ID,
			Title:            v.Title,
			Slug:             v.Slug,
			Category:         string(v.Category),
			ShortDescription: v.ShortDescription,
			Tags:             tags,
		})
	}
	return entries
}

// Write encodes the index of views to w as indented JSON
func Write(w io.Writer, views []catalog.PublicToolView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Entries(views)); err != nil {
		return fmt.Errorf("failed to encode tool index: %w", err)
	}
	return nil
}

// WriteFile writes the index to path, creating parent directories as needed
func WriteFile(path string, views []catalog.PublicToolView) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, views); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
