package suggestion

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Defaults substituted for anything missing from the boundary inputs.
const (
	DefaultCity          = "Maputo"
	DefaultTemperature   = 25.0
	DefaultDescription   = "ensolarado"
	DefaultHumidity      = 65.0
	DefaultUserCity      = "maputo"
	DefaultAnalysisType  = "weather_data"
	DefaultAnalysisCity  = "maputo"
	DefaultIntent        = "consulta_basica"
	DefaultComplexityTag = "basic"
)

// WeatherInput is the partially populated weather payload. Nil means absent.
type WeatherInput struct {
	City        *string
	Temperature *float64
	MinTemp     *float64
	MaxTemp     *float64
	Description *string
	Humidity    *float64
	IsForecast  *bool
}

// UserInput is the partially populated user profile.
type UserInput struct {
	QueryCount          *int
	LastCity            *string
	PreferredCity       *string
	ExpertiseLevel      *string
	PreferredComplexity *string
}

// AnalysisInput is the partially populated structural analysis.
type AnalysisInput struct {
	Type           *string
	City           *string
	Intent         *string
	ExpertiseLevel *string
}

// NormalizeWeather applies the weather defaults.
func NormalizeWeather(in *WeatherInput) WeatherContext {
	out := WeatherContext{
		City:        DefaultCity,
		Temperature: DefaultTemperature,
		Description: DefaultDescription,
		Humidity:    DefaultHumidity,
	}
	if in == nil {
		out.MinTemp, out.MaxTemp = out.Temperature, out.Temperature
		return out
	}
	out.City = nonEmpty(in.City, out.City)
	out.Temperature = finite(in.Temperature, out.Temperature)
	out.MinTemp = finite(in.MinTemp, out.Temperature)
	out.MaxTemp = finite(in.MaxTemp, out.Temperature)
	out.Description = nonEmpty(in.Description, out.Description)
	out.Humidity = clamp(finite(in.Humidity, out.Humidity), 0, 100)
	if in.IsForecast != nil {
		out.IsForecast = *in.IsForecast
	}
	return out
}

// NormalizeUser applies the user defaults.
func NormalizeUser(in *UserInput) UserContext {
	out := UserContext{
		LastCity:            DefaultUserCity,
		PreferredCity:       DefaultUserCity,
		ExpertiseLevel:      LevelBasic,
		PreferredComplexity: DefaultComplexityTag,
	}
	if in == nil {
		return out
	}
	if in.QueryCount != nil && *in.QueryCount > 0 {
		out.QueryCount = *in.QueryCount
	}
	out.LastCity = nonEmpty(in.LastCity, out.LastCity)
	out.PreferredCity = nonEmpty(in.PreferredCity, out.PreferredCity)
	if in.ExpertiseLevel != nil {
		out.ExpertiseLevel = parseLevel(strings.ToLower(strings.TrimSpace(*in.ExpertiseLevel)))
	}
	out.PreferredComplexity = nonEmpty(in.PreferredComplexity, out.PreferredComplexity)
	return out
}

// NormalizeAnalysis applies the structural analysis defaults.
func NormalizeAnalysis(in *AnalysisInput) Analysis {
	out := Analysis{
		Type:           DefaultAnalysisType,
		City:           DefaultAnalysisCity,
		Intent:         DefaultIntent,
		ExpertiseLevel: LevelBasic,
	}
	if in == nil {
		return out
	}
	out.Type = nonEmpty(in.Type, out.Type)
	out.City = nonEmpty(in.City, out.City)
	out.Intent = nonEmpty(in.Intent, out.Intent)
	if in.ExpertiseLevel != nil {
		out.ExpertiseLevel = parseLevel(strings.ToLower(strings.TrimSpace(*in.ExpertiseLevel)))
	}
	return out
}

// UnmarshalJSON accepts any JSON value. Non-objects and wrongly typed fields
// leave the corresponding fields unset.
func (w *WeatherInput) UnmarshalJSON(data []byte) error {
	*w = WeatherInput{}
	fields := decodeObject(data)
	w.City = stringField(fields, "city", "name")
	w.Temperature = numberField(fields, "temperature", "temp")
	w.MinTemp = numberField(fields, "minTemp", "temp_min")
	w.MaxTemp = numberField(fields, "maxTemp", "temp_max")
	w.Description = stringField(fields, "description")
	w.Humidity = numberField(fields, "humidity")
	w.IsForecast = boolField(fields, "isForecast")
	return nil
}

// UnmarshalJSON accepts any JSON value, see WeatherInput.
func (u *UserInput) UnmarshalJSON(data []byte) error {
	*u = UserInput{}
	fields := decodeObject(data)
	if n := numberField(fields, "queryCount"); n != nil {
		count := int(*n)
		u.QueryCount = &count
	}
	u.LastCity = stringField(fields, "lastCity")
	u.PreferredCity = stringField(fields, "preferredCity")
	u.ExpertiseLevel = stringField(fields, "expertiseLevel")
	u.PreferredComplexity = stringField(fields, "preferredComplexity")
	return nil
}

// UnmarshalJSON accepts any JSON value, see WeatherInput.
func (a *AnalysisInput) UnmarshalJSON(data []byte) error {
	*a = AnalysisInput{}
	fields := decodeObject(data)
	a.Type = stringField(fields, "type")
	a.City = stringField(fields, "city")
	a.Intent = stringField(fields, "intent")
	a.ExpertiseLevel = stringField(fields, "expertiseLevel")
	return nil
}

func decodeObject(data []byte) map[string]json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil
	}
	return fields
}

func stringField(fields map[string]json.RawMessage, names ...string) *string {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	return nil
}

// numberField accepts JSON numbers and numeric strings such as "25".
func numberField(fields map[string]json.RawMessage, names ...string) *float64 {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return &f
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func boolField(fields map[string]json.RawMessage, names ...string) *bool {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return &b
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func nonEmpty(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		return trimmed
	}
	return fallback
}

func finite(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fallback
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
