package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateQuestion(t *testing.T) {
	cases := []struct {
		name     string
		question string
		maxLen   int
		want     string
	}{
		{"corta pasa intacta", "Will it rain?", 60, "Will it rain?"},
		{"larga se trunca con elipsis", strings.Repeat("x", 70), 60, strings.Repeat("x", 57) + "..."},
		{"exacta no se toca", strings.Repeat("x", 60), 60, strings.Repeat("x", 60)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateQuestion(tc.question, "0xcond", tc.maxLen))
		})
	}
}

func TestTruncateQuestion_MultibyteRunes(t *testing.T) {
	// °C ocupa dos bytes; el corte debe contar runas, no bytes
	q := "Will Phoenix exceed 45°C on any day this week? " + strings.Repeat("más calor ", 5)
	got := TruncateQuestion(q, "0xcond", 60)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 60, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateQuestion_EmptyFallsBackToConditionID(t *testing.T) {
	long := "0x" + strings.Repeat("ab", 20)
	assert.Equal(t, long[:20]+"...", TruncateQuestion("", long, 60))
	assert.Equal(t, "0xshort", TruncateQuestion("", "0xshort", 60))
}

func TestPriceForToken(t *testing.T) {
	m := Market{
		ConditionID: "0xmkt",
		Outcomes: []MarketOutcome{
			{Label: "Yes", TokenID: "tokYes", Price: 0.62, PriceKnown: true},
			{Label: "No", TokenID: "tokNo"},
		},
	}

	price, ok := m.PriceForToken("tokYes")
	assert.True(t, ok)
	assert.InDelta(t, 0.62, price, 1e-9)

	// Token presente pero sin precio conocido
	_, ok = m.PriceForToken("tokNo")
	assert.False(t, ok)

	_, ok = m.PriceForToken("tokOther")
	assert.False(t, ok)
}
