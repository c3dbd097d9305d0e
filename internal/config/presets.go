package config

import "github.com/san-kum/glyphgarden/internal/theme"

// Sections are the built-in content sections, in page order.
var Sections = []theme.Section{
	{
		Name:    "alphabet",
		Chars:   "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		Colors:  "#3498db,#e91e63,#2ecc71,#f1c40f,#000000",
		Density: "48",
	},
	{
		Name:    "spring",
		Chars:   "春 花 草 芽 风 雨",
		Colors:  "#f8a5c2,#78e08f,#f6e58d,#60a3bc",
		Density: "56",
	},
	{
		Name:    "summer",
		Chars:   "夏 荷 蝉 光",
		Colors:  "#e55039,#f6b93b,#38ada9,#0a3d62",
		Density: "64",
	},
	{
		Name:    "autumn",
		Chars:   "秋 叶 霜 月",
		Colors:  "#b33939,#cd6133,#cc8e35,#474787",
		Density: "40",
	},
	{
		Name:    "winter",
		Chars:   "冬 雪 松 静",
		Colors:  "#2c3e50,#7f8c8d,#95a5a6",
		Density: "24",
	},
	{
		Name:    "digits",
		Chars:   "0123456789",
		Colors:  "#222222,#555555,#e91e63",
		Density: "36",
	},
}

func BuiltinSections() []theme.Section {
	out := make([]theme.Section, len(Sections))
	copy(out, Sections)
	return out
}

// GetSection returns the position of the named section in sections.
func GetSection(sections []theme.Section, name string) (int, bool) {
	for i, s := range sections {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

func ListSections(sections []theme.Section) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}
