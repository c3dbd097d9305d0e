// Package theme turns external content sections into garden theme changes.
package theme

import (
	"strconv"
	"strings"

	"github.com/san-kum/glyphgarden/internal/garden"
)

// Section mirrors the three optional data attributes a content section carries.
type Section struct {
	Name    string `yaml:"name"`
	Chars   string `yaml:"chars"`
	Colors  string `yaml:"colors"`
	Density string `yaml:"density"`
}

// Update converts the attributes into a theme update. Blank attributes and
// a non-integer density are treated as absent.
func (s Section) Update() garden.ThemeUpdate {
	var u garden.ThemeUpdate
	if strings.TrimSpace(s.Chars) != "" {
		chars := s.Chars
		u.Chars = &chars
	}
	u.Colors = garden.SplitColors(s.Colors)
	if d, err := strconv.Atoi(strings.TrimSpace(s.Density)); err == nil {
		u.Density = &d
	}
	return u
}

func (s Section) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Chars
}
