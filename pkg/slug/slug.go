package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var replacer = strings.NewReplacer(
	`"`, "-inch ",
	"&", " and ",
	"á", "a", "à", "a", "â", "a", "ä", "a", "ā", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e", "ē", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i", "ī", "i",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "ō", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u", "ū", "u",
	"ñ", "n", "ç", "c",
)

// Generate creates a URL-friendly slug from a product or category name.
//
//	"Pots & Planters"    -> "pots-and-planters"
//	`Snake Plant 4" Pot` -> "snake-plant-4-inch-pot"
func Generate(name string) string {
	s := replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
