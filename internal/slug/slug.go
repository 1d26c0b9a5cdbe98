// Package slug builds URL-safe product identifiers from (mostly Cyrillic) names.
//
// Output is deterministic: backfill runs over the same catalog must mint the same
// slugs, so the transliteration table below is part of the URL contract.
package slug

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength caps slugs stored in catalog_items.slug
const DefaultMaxLength = 200

// fallbackBase is used when a name has no transliterable characters but a shop suffix is required
const fallbackBase = "product"

var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	// Ukrainian / Belarusian letters seen in supplier feeds
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g", 'ў': "u",
}

// Transliterate maps Cyrillic letters to Latin, preserving case ("Ж" -> "Zh").
// Other runes pass through unchanged.
func Transliterate(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		lower := toLowerCyrillic(r)
		latin, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}
	return b.String()
}

func toLowerCyrillic(r rune) rune {
	switch {
	case r >= 'А' && r <= 'Я':
		return r + ('а' - 'А')
	case r == 'Ё':
		return 'ё'
	case r == 'І':
		return 'і'
	case r == 'Ї':
		return 'ї'
	case r == 'Є':
		return 'є'
	case r == 'Ґ':
		return 'ґ'
	case r == 'Ў':
		return 'ў'
	}
	return r
}

// Slugify transliterates, lowercases, collapses every run of characters outside
// [a-z0-9] into one underscore and trims underscores from both ends. The result is
// at most maxLength bytes (DefaultMaxLength when maxLength <= 0) and never ends
// with an underscore.
func Slugify(name string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	lowered := strings.ToLower(Transliterate(name))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSep := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := b.String()
	if len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "_")
	}
	return out
}

// GenerateProductSlug slugifies a product name and, when shopCode is set, appends
// "_<shopcode>" inside the DefaultMaxLength budget so rows of different shops stay unique.
func GenerateProductSlug(name, shopCode string) string {
	suffix := Slugify(shopCode, DefaultMaxLength/2)
	if suffix == "" {
		return Slugify(name, DefaultMaxLength)
	}

	base := Slugify(name, DefaultMaxLength-len(suffix)-1)
	if base == "" {
		base = fallbackBase
	}
	return base + "_" + suffix
}
