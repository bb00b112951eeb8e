package catalog

import (
	"path/filepath"
	"strings"
)

// Kind selects the colour used to draw a category
type Kind uint8

const (
	KindNone Kind = iota
	KindBIOS
	KindLogo
	KindSubROM
	KindKanji
	KindDisk
	KindMusic
	KindExtras
)

// Category is the display label of a selected file
type Category struct {
	Label string
	Kind  Kind
}

// fallbackLabelWidth bounds labels derived from filenames
const fallbackLabelWidth = 8

// rule matches a lower-cased filename (and path) to a category
type rule struct {
	match func(name, path string) bool
	cat   Category
}

func contains(subs ...string) func(name, path string) bool {
	return func(name, _ string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

func always(string, string) bool { return true }

// fromExtras matches files found under an extras directory
func fromExtras(_, path string) bool {
	return strings.Contains(filepath.ToSlash(path), "extras/")
}

// regionRules are evaluated in order; a rule with an empty label takes the
// label from the filename
var regionRules = [4][]rule{
	{
		{contains("logo"), Category{"LOGO", KindLogo}},
		{always, Category{"BIOS", KindBIOS}},
	},
	{
		{contains("kanji"), Category{"KANJI", KindKanji}},
		{contains("sub"), Category{"SUBROM", KindSubROM}},
		{contains("ext"), Category{"EXT", KindSubROM}},
		{fromExtras, Category{"", KindExtras}},
		{always, Category{"", KindSubROM}},
	},
	{
		{contains("disk"), Category{"DISK", KindDisk}},
		{always, Category{"", KindDisk}},
	},
	{
		{contains("kun"), Category{"KUN", KindMusic}},
		{contains("music"), Category{"MUSIC", KindMusic}},
		{contains("fm"), Category{"FM", KindMusic}},
		{always, Category{"", KindMusic}},
	},
}

// Classify derives the display category of a file selected in region
func Classify(region int, name, path string) Category {
	if region < 0 || region >= len(regionRules) || name == "" {
		return Category{}
	}
	lower := strings.ToLower(name)
	for _, r := range regionRules[region] {
		if !r.match(lower, path) {
			continue
		}
		c := r.cat
		if c.Label == "" {
			c.Label = FallbackLabel(name)
		}
		return c
	}
	return Category{Label: FallbackLabel(name)}
}

// FallbackLabel upper-cases the filename up to its first dot, at most 8 runes
func FallbackLabel(name string) string {
	base, _, _ := strings.Cut(name, ".")
	r := []rune(strings.ToUpper(base))
	if len(r) > fallbackLabelWidth {
		r = r[:fallbackLabelWidth]
	}
	return string(r)
}
