package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

func TestNewAuthorSearch(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		threshold    int
		wantTerms    []string
		wantValue    string
		wantMinMatch int
	}{
		{"three terms capped by threshold", "John Quincy Adams", 2, []string{"john", "quincy", "adams"}, "john quincy adams", 2},
		{"single term requires it", "Einstein", 2, []string{"einstein"}, "einstein", 1},
		{"threshold one", "John Kennedy", 1, []string{"john", "kennedy"}, "john kennedy", 1},
		{"threshold above term count", "John Kennedy", 5, []string{"john", "kennedy"}, "john kennedy", 2},
		{"threshold below one", "John Kennedy", 0, []string{"john", "kennedy"}, "john kennedy", 1},
		{"initials fall back to value", "J. K.", 2, []string{"j k"}, "j k", 1},
		{"punctuation only", "...", 2, []string{}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAuthorSearch(tt.input, tt.threshold, true)
			assert.Equal(t, tt.wantTerms, got.Terms)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantMinMatch, got.MinMatch)
			assert.True(t, got.Autocomplete)
		})
	}
}

func TestAuthorSearch_IsEmpty(t *testing.T) {
	assert.True(t, NewAuthorSearch("!!", 2, false).IsEmpty())
	assert.False(t, NewAuthorSearch("plato", 2, false).IsEmpty())
}

func TestParseAuthorSearch(t *testing.T) {
	got, err := ParseAuthorSearch(Params{"query": "john adams", "matchThreshold": "1", "autocomplete": "false"}, DefaultMatchThreshold)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MinMatch)
	assert.False(t, got.Autocomplete)

	got, err = ParseAuthorSearch(Params{"query": "john adams"}, DefaultMatchThreshold)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MinMatch)
	assert.True(t, got.Autocomplete)

	got, err = ParseAuthorSearch(Params{"query": "john quincy adams"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MinMatch, "the default threshold applies without matchThreshold")

	got, err = ParseAuthorSearch(Params{"query": "john quincy adams", "matchThreshold": "1"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MinMatch)
}

func TestParseAuthorSearch_MissingQuery(t *testing.T) {
	for _, p := range []Params{{}, {"query": "   "}} {
		_, err := ParseAuthorSearch(p, DefaultMatchThreshold)
		require.Error(t, err)
		assert.True(t, domain.IsMissingParameter(err))
		assert.Equal(t, "Missing required parameter: `query`", err.Error())
	}
}
