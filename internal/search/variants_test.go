package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSearchVariants(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"latin typed on russian layout", "ghbdtn", []string{"ghbdtn", "привет"}},
		{"russian typed on latin layout", "руддщ", []string{"руддщ", "hello"}},
		{"case preserved", "Jrcdf", []string{"Jrcdf", "Оксва"}},
		{"punctuation keys follow letters", "b,ks", []string{"b,ks", "иблы"}},
		{"trimmed", "  ghbdtn  ", []string{"ghbdtn", "привет"}},
		{"digits only", "1000", []string{"1000"}},
		{"empty", "   ", nil},
		{"tie keeps original only", "abвг", []string{"abвг"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSearchVariants(tt.query))
		})
	}
}

func TestSwapLayoutRoundTrip(t *testing.T) {
	for _, word := range []string{"привет", "жидкость", "картридж"} {
		swapped := SwapLayout(word)
		assert.NotEqual(t, word, swapped)
		assert.Equal(t, word, SwapLayout(swapped))
	}
}

func TestSwapLayoutMixedDigits(t *testing.T) {
	assert.Equal(t, "ЩЧМФ 2", SwapLayout("OXVA 2"))
}
