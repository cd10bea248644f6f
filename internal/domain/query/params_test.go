package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"20", 20, true},
		{" 7 ", 7, true},
		{"-5", -5, true},
		{"+3", 3, true},
		{"12abc", 12, true},
		{"1.9", 1, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", maxInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseInt(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"2", false, true},
		{"0", true, false},
		{"false", true, false},
		{"yes", true, false},
		{"", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBoolean(tt.input, tt.def))
		})
	}
}

func TestFromValues(t *testing.T) {
	p := FromValues(url.Values{
		"tags":  {"love", "life"},
		"skip":  {""},
		"empty": {},
	})

	assert.Equal(t, "love", p.Get("tags"))
	assert.True(t, p.Has("skip"))
	assert.False(t, p.Has("empty"))
	assert.False(t, p.Has("page"))
}

func TestParams_First(t *testing.T) {
	p := Params{"order": "desc", "sortOrder": ""}

	assert.Equal(t, "desc", p.First("sortOrder", "order"))
	assert.Empty(t, p.First("missing"))
}
