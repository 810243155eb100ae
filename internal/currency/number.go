package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/AngelCh415/adspend/internal/models"
)

// ParseNumber never fails: null, blank and unparsable input give 0.
// Strings use ',' as decimal separator; every character outside [0-9.-]
// is dropped and the longest numeric prefix of the rest is read, so
// "1 234,56" is 1234.56 and "12.5.3" is 12.5.
func ParseNumber(v models.Value) float64 {
	switch v.Kind {
	case models.KindNumber:
		return finite(v.Num)
	case models.KindString:
		return ParseString(v.Str)
	}
	return 0
}

func ParseString(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	p := numericPrefix(b.String())
	if p == "" {
		return 0
	}
	f, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// numericPrefix returns the longest prefix shaped like -?digits[.digits].
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	end := i
	if i < len(s) && s[i] == '.' {
		i++
		frac := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			frac++
		}
		if frac > 0 {
			digits += frac
			end = i
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
