package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number lists the byte count types FormatSize accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// EmptySize is rendered for zero, negative and NaN sizes.
const EmptySize = "-"

const (
	sizeBase      = 1024
	sizePrecision = 1
	byteUnit      = "B"
)

// Labels stay decimal-style even though every step divides by 1024.
var sizeUnits = [...]string{"kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// SizeUnits returns every unit label FormatSize can emit, smallest first.
func SizeUnits() []string {
	out := make([]string, 0, len(sizeUnits)+1)
	out = append(out, byteUnit)
	return append(out, sizeUnits[:]...)
}

// FormatSize renders a byte count for display.
//
// Sizes at or below zero render as "-". Sizes under 1024 render as the plain
// number followed by " B". Larger sizes are divided by 1024 until the value,
// rounded to one decimal, drops below 1024 or the largest unit (YB) is
// reached; the result keeps exactly one decimal: 1536 renders "1.5 kB" and
// 1048575 renders "1.0 MB".
func FormatSize[T Number](size T) string {
	value, unit := scaleSize(float64(size))
	switch {
	case unit < 0:
		return EmptySize
	case unit == 0:
		return numberString(value) + " " + byteUnit
	default:
		return toFixed(value, sizePrecision) + " " + sizeUnits[unit-1]
	}
}

// SizeUnit returns the unit label FormatSize would pick for size, or ""
// when the size renders as EmptySize.
func SizeUnit[T Number](size T) string {
	_, unit := scaleSize(float64(size))
	if unit < 0 {
		return ""
	}
	return SizeUnits()[unit]
}

// scaleSize returns the scaled value and its index into SizeUnits, or -1 for
// sizes that have no unit.
func scaleSize(size float64) (float64, int) {
	if math.IsNaN(size) || size <= 0 {
		return size, -1
	}
	if size < sizeBase {
		return size, 0
	}

	unit := 0
	for {
		size /= sizeBase
		unit++
		if roundTo(math.Abs(size), sizePrecision) < sizeBase || unit >= len(sizeUnits) {
			return size, unit
		}
	}
}

func roundTo(value float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(value*scale) / scale
}

// toFixed renders value with the given number of decimals. Exact ties round
// up, so 1.25 renders "1.3" where strconv would round to even.
func toFixed(value float64, digits int) string {
	switch {
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case math.IsNaN(value):
		return "NaN"
	}

	negative := value < 0
	if negative {
		value = -value
	}
	if value >= 1e21 {
		return sign(negative) + numberString(value)
	}

	scaled := new(big.Rat).SetFloat64(value)
	scaled.Mul(scaled, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)))
	scaled.Add(scaled, big.NewRat(1, 2))
	text := new(big.Int).Quo(scaled.Num(), scaled.Denom()).String()

	if digits > 0 {
		if len(text) <= digits {
			text = strings.Repeat("0", digits-len(text)+1) + text
		}
		text = text[:len(text)-digits] + "." + text[len(text)-digits:]
	}
	return sign(negative) + text
}

// numberString renders the shortest decimal text for value, switching to
// exponent form outside [1e-6, 1e21) with an unpadded exponent ("1e-7").
func numberString(value float64) string {
	abs := math.Abs(value)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		text := strconv.FormatFloat(value, 'e', -1, 64)
		mantissa, exponent, _ := strings.Cut(text, "e")
		expSign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
		return mantissa + "e" + expSign + digits
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func sign(negative bool) string {
	if negative {
		return "-"
	}
	return ""
}
