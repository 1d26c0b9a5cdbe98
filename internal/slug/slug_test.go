package slug

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_]*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Картридж JustFog Minifit S (0,2 Ом) 1,9 мл", "kartridzh_justfog_minifit_s_0_2_om_1_9_ml"},
		{"POD Система OXVA", "pod_sistema_oxva"},
		{"Жидкость HUSKY Ice", "zhidkost_husky_ice"},
		{"  --Щука__Ёлка--  ", "schuka_yolka"},
		{"Испаритель 0.8Ω", "isparitel_0_8"},
		{"", ""},
		{"!!!", ""},
		{"Подъезд", "podezd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input, 0))
		})
	}
}

func TestSlugifyDecomposedShortI(t *testing.T) {
	// "й" written as "и" + U+0306 combining breve
	assert.Equal(t, "chaynik", Slugify("Чаи\u0306ник", 0))
}

func TestTransliteratePreservesCase(t *testing.T) {
	assert.Equal(t, "Zhuk Shmel", Transliterate("Жук Шмель"))
	assert.Equal(t, "OXVA Xlim", Transliterate("OXVA Xlim"))
}

func TestSlugifyProperties(t *testing.T) {
	inputs := []string{
		"Картридж JustFog Minifit S (0,2 Ом) 1,9 мл",
		"___a___b___",
		"Жидкость Мятная   конфета 30ml 20mg Strong!!!",
		strings.Repeat("Очень длинное название ", 30),
		"🙂 emoji 🙂 только",
		"a",
	}
	for _, in := range inputs {
		for _, max := range []int{0, 5, 17, 40, 200} {
			out := Slugify(in, max)
			limit := max
			if limit <= 0 {
				limit = DefaultMaxLength
			}
			assert.Regexp(t, slugPattern, out)
			assert.LessOrEqual(t, len(out), limit)
			assert.False(t, strings.HasPrefix(out, "_"), out)
			assert.False(t, strings.HasSuffix(out, "_"), out)
			assert.NotContains(t, out, "__")
			assert.Equal(t, out, Slugify(out, max), "slugify must be idempotent")
		}
	}
}

func TestGenerateProductSlug(t *testing.T) {
	got := GenerateProductSlug("POD Система OXVA", "SHOP1")
	assert.Equal(t, "pod_sistema_oxva_shop1", got)

	long := GenerateProductSlug(strings.Repeat("Жидкость ", 60), "SHOP1")
	assert.True(t, strings.HasSuffix(long, "_shop1"))
	assert.LessOrEqual(t, len(long), DefaultMaxLength)
	assert.NotContains(t, long, "__")

	assert.Equal(t, "product_shop1", GenerateProductSlug("!!!", "SHOP1"))
	assert.Equal(t, "pod_sistema_oxva", GenerateProductSlug("POD Система OXVA", ""))
}
