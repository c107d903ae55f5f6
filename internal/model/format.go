package model

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfEven rounds v to the given number of decimal places using banker's
// rounding. Every amount the report displays goes through this policy;
// aggregation itself keeps full float64 precision.
func RoundHalfEven(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	scaled := v * scale
	floor := math.Floor(scaled)
	diff := scaled - floor
	switch {
	case diff > 0.5:
		floor++
	case diff == 0.5:
		if math.Mod(floor, 2) != 0 {
			floor++
		}
	}
	return floor / scale
}

// FormatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 1234.5 → "$1,234.50".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(RoundHalfEven(v, 2), 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}

	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCount renders an integer with thousands separators, e.g. 12345 → "12,345".
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPercent renders a share as a percentage with one decimal,
// e.g. 0.125 → "12.5%".
func FormatPercent(share float64) string {
	return strconv.FormatFloat(RoundHalfEven(share*100, 1), 'f', 1, 64) + "%"
}
