package models

import (
	"strings"
	"unicode"
)

// MenuItem represents a single dish on a restaurant's menu
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	OutOfStock  bool     `json:"isOutOfStock,omitempty"`
}

// MenuCategory groups menu items under a named section
type MenuCategory struct {
	Key   string     `json:"key"`
	Items []MenuItem `json:"items"`
}

// Name returns the human readable category name derived from its key,
// e.g. "mainCourses" becomes "Main Courses".
func (c MenuCategory) Name() string {
	var b strings.Builder
	for i, r := range c.Key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
