package scanner_test

import (
	"testing"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/scanner"
	"github.com/stretchr/testify/assert"
)

func TestIsWeatherMarket(t *testing.T) {
	cases := []struct {
		name   string
		market domain.Market
		want   bool
	}{
		{
			"temperatura en la pregunta",
			domain.Market{Question: "Will NYC temperature exceed 100F in July?"},
			true,
		},
		{
			"keyword solo en la descripción",
			domain.Market{
				Question:    "Will this resolve Yes?",
				Description: "Resolves Yes if NOAA reports a new record.",
			},
			true,
		},
		{
			"keyword solo en el slug",
			domain.Market{Question: "Denver in December?", Slug: "denver-blizzard-december"},
			true,
		},
		{
			"mayúsculas no importan",
			domain.Market{Question: "WILL A TROPICAL STORM HIT FLORIDA?"},
			true,
		},
		{
			"grados con símbolo",
			domain.Market{Question: "Will London exceed 35°C this week?"},
			true,
		},
		{
			"mercado de política",
			domain.Market{Question: "Will the incumbent win the election?"},
			false,
		},
		{
			"mercado de crypto",
			domain.Market{Question: "Will BTC close above 100k?", Slug: "btc-100k"},
			false,
		},
		{
			"vacío",
			domain.Market{},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scanner.IsWeatherMarket(tc.market))
		})
	}
}
