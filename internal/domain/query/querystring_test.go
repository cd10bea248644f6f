package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParsedQuery
	}{
		{"plain words", "life is beautiful", ParsedQuery{Query: "life is beautiful"}},
		{"double quoted phrase", `"Life Is Beautiful!"`, ParsedQuery{Query: "life is beautiful", ExactPhrase: true}},
		{"single quoted phrase", " 'To be, or not to be' ", ParsedQuery{Query: "to be or not to be", ExactPhrase: true}},
		{"half quoted is not a phrase", `"life is`, ParsedQuery{Query: "life is"}},
		{"strips punctuation", "life, love & peace!", ParsedQuery{Query: "life love  peace"}},
		{"keeps brackets and colons", "author:einstein [relativity]", ParsedQuery{Query: "author:einstein [relativity]"}},
		{"content prefix widened", "content:wisdom", ParsedQuery{Query: "(content:wisdom OR tags:wisdom)"}},
		{"grouped content prefix widened", "content:(war peace) AND author:tolstoy", ParsedQuery{Query: "(content:(war peace) OR tags:(war peace)) AND author:tolstoy"}},
		{"prefix is case insensitive", "Tags:love", ParsedQuery{Query: "Tags:love"}},
		{"five operators allowed", "a AND b OR c AND d OR e NOT f", ParsedQuery{Query: "a AND b OR c AND d OR e NOT f"}},
		{"lowercase operators are words", "and or not and or not", ParsedQuery{Query: "and or not and or not"}},
		{"operators inside words do not count", "ORANGE NOTHING ANDROID ORACLE NOTE ORBIT", ParsedQuery{Query: "ORANGE NOTHING ANDROID ORACLE NOTE ORBIT"}},
		{"only punctuation", "?!", ParsedQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"six operators", "a AND b AND c AND d AND e AND f AND g", MsgQueryTooLong},
		{"four prefixes", "author:a tags:b content:c author:d", MsgQueryTooLong},
		{"too long", strings.Repeat("a", MaxQueryLength+1), MsgQueryTooLong},
		{"unsupported prefix", "foo:bar", MsgInvalidPrefix},
		{"unsupported prefix among valid", "author:plato year:1900", MsgInvalidPrefix},
		{"length error wins", "foo:a foo:b foo:c foo:d", MsgQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestParseQuery_LengthCountsStrippedQuery(t *testing.T) {
	input := strings.Repeat("a", MaxQueryLength) + strings.Repeat("!", 20)

	got, err := ParseQuery(input)
	require.NoError(t, err)
	assert.Len(t, got.Query, MaxQueryLength)
}

func TestParsedQuery_IsEmpty(t *testing.T) {
	assert.True(t, ParsedQuery{Query: "  "}.IsEmpty())
	assert.False(t, ParsedQuery{Query: "love"}.IsEmpty())
}

func TestIsSearchField(t *testing.T) {
	assert.True(t, IsSearchField("content"))
	assert.True(t, IsSearchField("AUTHOR"))
	assert.True(t, IsSearchField("tags"))
	assert.False(t, IsSearchField("tag"))
}
