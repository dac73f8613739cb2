package scanner

// classifier.go — detección de mercados weather por keywords.
//
// La clasificación es puramente léxica sobre question + description + slug.
// Es deliberadamente amplia: un falso positivo cuesta una consulta extra de
// leaders, un falso negativo pierde el mercado entero.

import (
	"strings"

	"github.com/alejandrodnm/weatherbot/internal/domain"
)

// weatherKeywords son los términos que marcan un mercado como weather.
// Minúsculas: el texto del mercado se normaliza antes de comparar.
var weatherKeywords = []string{
	"temperature", "weather", "degrees", "°f", "°c",
	"fahrenheit", "celsius",
	"snow", "rainfall", "precipitation",
	"tornado", "flood", "drought",
	"heat wave", "polar vortex", "el nino", "la nina",
	"noaa",
	"hottest", "coldest", "warmest",
	"record high", "record low",
	"winter storm", "blizzard", "tropical storm",
	"hurricane season", "atlantic hurricane",
	"climate", "wildfire", "wind speed",
	"arctic", "ice extent", "sea ice", "record year",
}

// IsWeatherMarket devuelve true si el texto del mercado contiene alguna
// keyword meteorológica.
func IsWeatherMarket(m domain.Market) bool {
	text := strings.ToLower(m.Question + " " + m.Description + " " + m.Slug)
	for _, kw := range weatherKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
