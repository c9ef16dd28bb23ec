package suggestion

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Time-of-day buckets shared by the cache key and the time-based rules.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodNight     = "night"
)

// BuildCacheKey derives the lookaside key for a normalized context. Near
// identical contexts collapse onto one key: temperature is floored to a
// multiple of 5 and the clock only contributes its time-of-day bucket.
func BuildCacheKey(analysis Analysis, weather WeatherContext, user UserContext, now time.Time) string {
	parts := []string{
		keyPart(analysis.Type),
		keyPart(analysis.City),
		keyPart(analysis.Intent),
		keyPart(weather.Description),
		strconv.Itoa(temperatureBucket(weather.Temperature)),
		PeriodOf(now),
		keyPart(string(user.ExpertiseLevel)),
	}
	return strings.Join(parts, "_")
}

// PeriodOf buckets the wall-clock hour: morning 06-12, afternoon 12-18,
// evening 18-22, night otherwise.
func PeriodOf(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return PeriodMorning
	case h >= 12 && h < 18:
		return PeriodAfternoon
	case h >= 18 && h < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

func temperatureBucket(t float64) int {
	return int(math.Floor(t/5) * 5)
}

func keyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
