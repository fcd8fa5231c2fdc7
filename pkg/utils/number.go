package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// MinorUnitsToAmount converte valores em centavos (string) para a unidade da moeda.
// Valores vazios ou inválidos retornam nil.
func MinorUnitsToAmount(value string) *float64 {
	if value == "" {
		return nil
	}
	minor, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	amount := RoundWithTwoDecimalPlace(minor / 100)
	return &amount
}

// MicrosToAmount converte valores em micros (Google Ads) para a unidade da moeda
func MicrosToAmount(micros int64) float64 {
	return RoundWithTwoDecimalPlace(float64(micros) / 1_000_000)
}

// ParseInt64 devolve zero para valores vazios ou inválidos
func ParseInt64(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func ParseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
