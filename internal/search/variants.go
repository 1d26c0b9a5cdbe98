// Package search expands user queries typed in the wrong keyboard layout.
package search

import (
	"strings"
	"unicode"
)

// qwertyToJcuken is the physical-key remap between the US and Russian layouts.
// Changing it changes which products existing searches find.
var qwertyToJcuken = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г',
	'i': 'ш', 'o': 'щ', 'p': 'з', '[': 'х', ']': 'ъ', 'a': 'ф', 's': 'ы',
	'd': 'в', 'f': 'а', 'g': 'п', 'h': 'р', 'j': 'о', 'k': 'л', 'l': 'д',
	';': 'ж', '\'': 'э', 'z': 'я', 'x': 'ч', 'c': 'с', 'v': 'м', 'b': 'и',
	'n': 'т', 'm': 'ь', ',': 'б', '.': 'ю', '`': 'ё',
}

var jcukenToQwerty = invert(qwertyToJcuken)

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// GetSearchVariants returns the trimmed query followed by its keyboard-layout swap
// when that differs. The swap direction follows whichever script dominates the
// query's letters; a tie yields only the original.
func GetSearchVariants(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	variants := []string{query}
	if swapped := SwapLayout(query); swapped != "" && swapped != query {
		variants = append(variants, swapped)
	}
	return variants
}

// SwapLayout re-types s on the other keyboard layout. It returns s unchanged when
// neither script dominates.
func SwapLayout(s string) string {
	latin, cyrillic := 0, 0
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		}
	}

	var table map[rune]rune
	switch {
	case latin > cyrillic:
		table = qwertyToJcuken
	case cyrillic > latin:
		table = jcukenToQwerty
	default:
		return s
	}

	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		lower := unicode.ToLower(r)
		mapped, ok := table[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r {
			mapped = unicode.ToUpper(mapped)
		}
		b.WriteRune(mapped)
	}
	return b.String()
}
