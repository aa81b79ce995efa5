package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultIconHost serves the provider's condition icons
const DefaultIconHost = "openweathermap.org"

// WeatherSnapshot is the complete result of one successful fetch.
// A new fetch replaces it wholesale.
type WeatherSnapshot struct {
	Location     string // query that produced this snapshot
	Description  string
	TemperatureC int     // rounded from the provider value
	FeelsLikeC   float64 // provider value, unchanged
	HumidityPct  int
	WindSpeed    float64 // provider units (m/s with metric)
	CountryCode  string
	LocalTime    string // HH:MM:SS at the location
	IconCode     string
	IconRef      string // icon URL, opaque to the core
	Condition    string // provider's primary condition keyword
	ThemeKey     ThemeKey
	FetchedAt    time.Time
}

// ThemeKey selects a background presentation for a weather condition
type ThemeKey int

const (
	ThemeDefault ThemeKey = iota
	ThemeClear
	ThemeClouds
	ThemeRain
	ThemeThunderstorm
	ThemeSnow
	ThemeMist
	ThemeHaze
)

var themeNames = map[ThemeKey]string{
	ThemeDefault:      "default",
	ThemeClear:        "clear",
	ThemeClouds:       "clouds",
	ThemeRain:         "rain",
	ThemeThunderstorm: "thunderstorm",
	ThemeSnow:         "snow",
	ThemeMist:         "mist",
	ThemeHaze:         "haze",
}

func (k ThemeKey) String() string {
	if name, ok := themeNames[k]; ok {
		return name
	}
	return themeNames[ThemeDefault]
}

// ThemeKeyFor maps the provider's condition keyword to a theme.
// Matching ignores case; anything unrecognised gets ThemeDefault.
func ThemeKeyFor(condition string) ThemeKey {
	switch strings.ToLower(strings.TrimSpace(condition)) {
	case "clear":
		return ThemeClear
	case "clouds":
		return ThemeClouds
	case "rain":
		return ThemeRain
	case "thunderstorm":
		return ThemeThunderstorm
	case "snow":
		return ThemeSnow
	case "mist", "fog":
		return ThemeMist
	case "haze":
		return ThemeHaze
	default:
		return ThemeDefault
	}
}

// LocalTime returns the wall clock at a location offsetSeconds east of UTC
func LocalTime(now time.Time, offsetSeconds int) string {
	return now.UTC().Add(time.Duration(offsetSeconds) * time.Second).Format("15:04:05")
}

// IconURL builds the URL of the provider's 2x icon for code
func IconURL(host, code string) string {
	if host == "" {
		host = DefaultIconHost
	}
	return fmt.Sprintf("https://%s/img/wn/%s@2x.png", host, code)
}

// IconGlyph returns a terminal glyph for a provider icon code ("10d", "01n", ...)
func IconGlyph(code string) string {
	code = strings.TrimSuffix(code, "d")
	code = strings.TrimSuffix(code, "n")

	switch code {
	case "01":
		return "☀"
	case "02":
		return "⛅"
	case "03", "04":
		return "☁"
	case "09", "10":
		return "🌧"
	case "11":
		return "⛈"
	case "13":
		return "❄"
	case "50":
		return "🌫"
	default:
		return "☀"
	}
}

// Capitalize lower-cases s and upper-cases its first letter
func Capitalize(s string) string {
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}
