package domain

import (
	"fmt"
	"strings"
)

// Variable identifies a weather variable by its NASA POWER parameter code.
type Variable string

const (
	VarTemperature    Variable = "T2M"
	VarPrecipitation  Variable = "PRECTOTCORR"
	VarWindSpeed      Variable = "WS2M"
	VarHumidity       Variable = "RH2M"
	VarSolarRadiation Variable = "ALLSKY_SFC_SW_DWN"
)

// variableAliases maps lowercase friendly names to parameter codes.
var variableAliases = map[string]Variable{
	"temperature":     VarTemperature,
	"precipitation":   VarPrecipitation,
	"rainfall":        VarPrecipitation,
	"wind":            VarWindSpeed,
	"wind_speed":      VarWindSpeed,
	"humidity":        VarHumidity,
	"solar":           VarSolarRadiation,
	"solar_radiation": VarSolarRadiation,
}

// ParseVariable accepts either a POWER parameter code ("T2M") or a friendly
// name ("temperature"), case-insensitively.
func ParseVariable(s string) (Variable, error) {
	switch Variable(strings.ToUpper(strings.TrimSpace(s))) {
	case VarTemperature, VarPrecipitation, VarWindSpeed, VarHumidity, VarSolarRadiation:
		return Variable(strings.ToUpper(strings.TrimSpace(s))), nil
	}
	if v, ok := variableAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown weather variable %q", s)
}

// Unit returns the measurement unit for the variable.
func (v Variable) Unit() string {
	switch v {
	case VarTemperature:
		return "°C"
	case VarPrecipitation:
		return "mm/day"
	case VarWindSpeed:
		return "m/s"
	case VarHumidity:
		return "%"
	case VarSolarRadiation:
		return "kWh/m²/day"
	default:
		return ""
	}
}

// DefaultFamily returns the distribution family fitted when the caller does
// not choose one. Precipitation is right-skewed so it defaults to the
// log-normal; everything else defaults to the normal.
func (v Variable) DefaultFamily() Family {
	if v == VarPrecipitation {
		return FamilyLogNormal
	}
	return FamilyNormal
}
