package model

// RainIntensity selects one of the configured rain strengths.
type RainIntensity int

const (
	RainLight RainIntensity = iota
	RainMedium
	RainHeavy
	RainExtreme
)

func (r RainIntensity) String() string {
	switch r {
	case RainLight:
		return "light"
	case RainMedium:
		return "medium"
	case RainHeavy:
		return "heavy"
	case RainExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// ParseRainIntensity accepts either the name or the numeric level.
func ParseRainIntensity(s string) (RainIntensity, bool) {
	switch s {
	case "light", "0":
		return RainLight, true
	case "medium", "1":
		return RainMedium, true
	case "heavy", "2":
		return RainHeavy, true
	case "extreme", "3":
		return RainExtreme, true
	}
	return RainMedium, false
}

// Weather is the sky condition derived from the simulation clock.
type Weather string

const (
	WeatherSunny        Weather = "sunny"
	WeatherPartlyCloudy Weather = "partlyCloudy"
	WeatherLightRain    Weather = "lightRain"
	WeatherMediumRain   Weather = "mediumRain"
	WeatherHeavyRain    Weather = "heavyRain"
	WeatherExtremeRain  Weather = "extremeRain"
)

// Raining reports whether the weather adds water to the river.
func (w Weather) Raining() bool {
	switch w {
	case WeatherLightRain, WeatherMediumRain, WeatherHeavyRain, WeatherExtremeRain:
		return true
	}
	return false
}

// Clouds linger this many days after the rain stops.
const cloudyDaysAfterRain = 2

// weatherAt returns the weather for a given day of a storm of the given
// intensity and duration.
func weatherAt(days float64, intensity RainIntensity, durationDays float64) Weather {
	if days < durationDays {
		switch intensity {
		case RainLight:
			return WeatherLightRain
		case RainMedium:
			return WeatherMediumRain
		case RainHeavy:
			return WeatherHeavyRain
		default:
			return WeatherExtremeRain
		}
	}
	if days < durationDays+cloudyDaysAfterRain {
		return WeatherPartlyCloudy
	}
	return WeatherSunny
}

// rainStrength maps the weather onto the configured river increments.
func rainStrength(w Weather, strength [4]float64) float64 {
	switch w {
	case WeatherLightRain:
		return strength[RainLight]
	case WeatherMediumRain:
		return strength[RainMedium]
	case WeatherHeavyRain:
		return strength[RainHeavy]
	case WeatherExtremeRain:
		return strength[RainExtreme]
	}
	return 0
}
