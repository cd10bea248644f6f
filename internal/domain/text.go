package domain

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// latinFolds covers letters that have no canonical decomposition.
var latinFolds = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "Th",
	"æ", "ae", "Æ", "Ae",
	"œ", "oe", "Œ", "Oe",
	"ß", "ss",
	"ı", "i",
)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// Deburr strips diacritical marks and folds Latin ligatures to ASCII letters.
func Deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, latinFolds.Replace(s))
	if err != nil {
		return s
	}

	return out
}

// Words splits s into lower-cased words. Punctuation separates words and
// camelCase boundaries start a new word.
func Words(s string) []string {
	cleaned := strings.TrimSpace(nonWordRun.ReplaceAllString(s, " "))
	if cleaned == "" {
		return nil
	}

	return strings.Fields(strcase.ToDelimited(cleaned, ' '))
}

// Slug derives the URL identifier for a display name:
// "Søren Kierkegaard" becomes "soren-kierkegaard", "John O'Reilly" becomes "john-o-reilly".
func Slug(name string) string {
	return strings.Join(Words(Deburr(apostrophes.Replace(name))), "-")
}

// TitleCase capitalizes every word of s and joins them with single spaces.
// Tag names and tag filter values are both compared in this form.
func TitleCase(s string) string {
	words := Words(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}

	return strings.Join(words, " ")
}
