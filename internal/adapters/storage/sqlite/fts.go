package sqlite

import (
	"strings"
	"unicode"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

// FTS5 column filters.
const (
	ftsBody        = "body"
	ftsAuthor      = "author"
	ftsTags        = "tags"
	ftsContentTags = "{body tags}"
)

var ftsColumns = map[string]string{
	query.SearchFieldContent: ftsBody,
	query.SearchFieldAuthor:  ftsAuthor,
	query.SearchFieldTags:    ftsTags,
}

// matchExpression translates a text search into an FTS5 MATCH expression.
// It returns "" when nothing searchable is left.
//
// An exact phrase matches the quote body as a phrase. In advanced mode the
// query language is kept: field:term and field:(group) become column
// filters, AND, OR and NOT keep their meaning, adjacent terms are OR'd and
// unprefixed terms match the body. Otherwise every word matches the body or
// the tags.
func matchExpression(search query.TextSearch) string {
	if search.Query.ExactPhrase {
		words := domain.Words(search.Query.Query)
		if len(words) == 0 {
			return ""
		}
		return ftsTerm(ftsBody, strings.Join(words, " "))
	}

	tokens := ftsTokenize(search.Query.Query)

	if !search.Advanced {
		var terms []string
		seen := make(map[string]bool)
		for _, tok := range tokens {
			word := strings.ToLower(tok.text)
			if tok.kind != ftsWord || tok.isOperator() || seen[word] {
				continue
			}
			seen[word] = true
			terms = append(terms, ftsTerm(ftsContentTags, word))
		}
		return strings.Join(terms, " OR ")
	}

	p := &ftsParser{tokens: tokens}
	return p.parseOr(ftsBody)
}

func ftsTerm(column, phrase string) string {
	return column + ` : "` + strings.ReplaceAll(phrase, `"`, `""`) + `"`
}

type ftsTokenKind int

const (
	ftsWord ftsTokenKind = iota
	ftsOpen
	ftsClose
	ftsColon
)

type ftsToken struct {
	kind ftsTokenKind
	text string
}

func (t ftsToken) isOperator() bool {
	return t.kind == ftsWord && (t.text == "AND" || t.text == "OR" || t.text == "NOT")
}

func (t ftsToken) is(op string) bool {
	return t.kind == ftsWord && t.text == op
}

func ftsTokenize(s string) []ftsToken {
	var (
		tokens []ftsToken
		word   strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, ftsToken{kind: ftsWord, text: word.String()})
			word.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			word.WriteRune(r)
		case r == '(' || r == '[':
			flush()
			tokens = append(tokens, ftsToken{kind: ftsOpen})
		case r == ')' || r == ']':
			flush()
			tokens = append(tokens, ftsToken{kind: ftsClose})
		case r == ':':
			flush()
			tokens = append(tokens, ftsToken{kind: ftsColon})
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// ftsParser is a recursive descent parser over the structured query syntax.
// Precedence from loosest: OR (explicit or implicit), AND, NOT. Every loop
// iteration consumes at least one token. Dangling operators are dropped,
// and so is a NOT with nothing on its left together with its operand.
type ftsParser struct {
	tokens []ftsToken
	pos    int
	depth  int
}

func (p *ftsParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *ftsParser) peek() ftsToken {
	return p.tokens[p.pos]
}

func (p *ftsParser) parseOr(column string) string {
	left := p.parseAnd(column)

	for !p.done() {
		tok := p.peek()
		if tok.kind == ftsClose {
			if p.depth > 0 {
				break
			}
			p.pos++
			continue
		}

		if tok.is("OR") {
			p.pos++
		}

		left = ftsCombine(left, "OR", p.parseAnd(column))
	}

	return left
}

func (p *ftsParser) parseAnd(column string) string {
	left := p.parseNot(column)

	for !p.done() && p.peek().is("AND") {
		p.pos++
		left = ftsCombine(left, "AND", p.parseNot(column))
	}

	return left
}

func (p *ftsParser) parseNot(column string) string {
	left := p.parsePrimary(column)

	for !p.done() && p.peek().is("NOT") {
		p.pos++
		right := p.parsePrimary(column)
		if left != "" && right != "" {
			left = "(" + left + " NOT " + right + ")"
		}
	}

	return left
}

func (p *ftsParser) parsePrimary(column string) string {
	if p.done() {
		return ""
	}

	tok := p.peek()
	switch tok.kind {
	case ftsOpen:
		p.pos++
		p.depth++
		inner := p.parseOr(column)
		p.depth--
		if !p.done() && p.peek().kind == ftsClose {
			p.pos++
		}
		return inner
	case ftsClose:
		return ""
	case ftsColon:
		p.pos++
		return ""
	}

	if tok.isOperator() {
		return ""
	}

	p.pos++

	if !p.done() && p.peek().kind == ftsColon {
		if fieldColumn, ok := ftsColumns[strings.ToLower(tok.text)]; ok {
			p.pos++
			if p.done() || p.peek().kind == ftsClose || p.peek().isOperator() {
				return ""
			}
			return p.parsePrimary(fieldColumn)
		}
	}

	return ftsTerm(column, strings.ToLower(tok.text))
}

func ftsCombine(left, op, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return "(" + left + " " + op + " " + right + ")"
	}
}
