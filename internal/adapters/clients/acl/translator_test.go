package acl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

func TestDecodeQuotes(t *testing.T) {
	body := `[
		{"_id": "q1", "content": "Stay hungry.", "author": " Steve Jobs ", "tags": ["life"], "length": 99, "dateAdded": "2020-01-01"},
		{"id": "q2", "content": "Be yourself.", "author": "Oscar Wilde", "authorId": "legacy-wilde"}
	]`

	quotes, err := DecodeQuotes(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, domain.Quote{
		ID:        "q1",
		Content:   "Stay hungry.",
		Author:    "Steve Jobs",
		Tags:      []string{"life"},
		DateAdded: "2020-01-01",
	}, quotes[0])
	assert.Equal(t, "q2", quotes[1].ID)
	assert.Equal(t, "legacy-wilde", quotes[1].AuthorID)
}

func TestDecodeQuotes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"not json", `{`, "decoding quotes.json"},
		{"not an array", `{"_id": "q1"}`, "decoding quotes.json"},
		{"missing content", `[{"_id": "q1", "author": "A"}]`, "translating item 0"},
		{"blank author", `[{"content": "x", "author": "A"}, {"content": "y", "author": "  "}]`, "translating item 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuotes(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := DecodeQuotes(strings.NewReader(`[{"author": "A"}]`))
	assert.True(t, domain.IsValidation(err))
}

func TestDecodeAuthorsAndTags(t *testing.T) {
	authors, err := DecodeAuthors(strings.NewReader(`[{"_id": "a1", "name": "Oscar Wilde", "bio": "Poet.", "slug": "ignored", "quoteCount": 7}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.Author{{ID: "a1", Name: "Oscar Wilde", Bio: "Poet."}}, authors)

	tags, err := DecodeTags(strings.NewReader(`[{"_id": "t1", "name": "famous-quotes"}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: "t1", Name: "famous-quotes"}}, tags)

	_, err = DecodeTags(strings.NewReader(`[{"_id": "t1"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tags.json")
}

func TestTranslateSlice(t *testing.T) {
	double := func(n *int) (int, error) { return *n * 2, nil }

	out, err := TranslateSlice([]int{1, 2, 3}, Translator[int, int](double))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)

	empty, err := TranslateSlice([]int{}, Translator[int, int](double))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
