package mdfusion

import (
	"fmt"
	"time"

	"github.com/alnah/go-mdfusion/internal/yamlutil"
)

// documentMeta is the YAML front-matter block pandoc reads for the title
// page.
type documentMeta struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// BuildMetadata renders the YAML front-matter block prepended to the merged
// document.
func BuildMetadata(title, author string, now time.Time) (string, error) {
	data, err := yamlutil.Marshal(documentMeta{
		Title:  title,
		Author: author,
		Date:   now.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("building metadata block: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}
