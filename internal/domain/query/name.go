package query

import (
	"strings"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// maxNameWords caps how many words of a name query are considered.
const maxNameWords = 10

var namePrefixes = wordSet("mr", "mrs", "ms", "miss", "saint", "general", "brother", "captain",
	"count", "countess", "dr", "duke", "father", "reverend", "rev", "sir", "sister")

var nameSuffixes = wordSet("jr", "sr", "i", "ii", "iii", "iv", "v", "md", "dds", "phd", "dvm")

var nameStopwords = wordSet("the", "of", "de")

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// NameTerms is a name query broken down for author search.
type NameTerms struct {
	// Terms are the substantive words of the name.
	Terms []string

	// Value is the whole query, lower-cased.
	Value string
}

// ParseName splits a name query into search terms. Initials, honorific
// prefixes, suffixes and stop words are kept out of Terms but stay in Value.
//
//	"John F. Kennedy Jr."       -> terms [john kennedy]
//	"Saint Augustine of Hippo"  -> terms [augustine hippo]
func ParseName(raw string) NameTerms {
	value := strings.ToLower(strings.TrimSpace(raw))

	words := domain.Words(domain.Deburr(value))
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if isNameTerm(w) {
			terms = append(terms, w)
		}
	}

	return NameTerms{Terms: terms, Value: value}
}

func isNameTerm(word string) bool {
	if len([]rune(word)) <= 1 {
		return false
	}

	for _, set := range []map[string]struct{}{namePrefixes, nameSuffixes, nameStopwords} {
		if _, ok := set[word]; ok {
			return false
		}
	}

	return true
}
