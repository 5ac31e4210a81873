package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ToFraction переводит ставку в процентах (12 = 12%) в долю (0.12)
func ToFraction(ratePercent float64) float64 {
	return ratePercent / 100.0
}

// FormatINR форматирует сумму в рупиях с индийской группировкой разрядов
// (лакх/крор): 1161695.4 -> "₹11,61,695.40"
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + "₹" + groupIndian(intPart) + "." + fracPart
}

// FormatPercent форматирует процент с одним знаком после запятой
func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).Round(1).StringFixed(1) + "%"
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
