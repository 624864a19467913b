// Package rules contains the reusable field predicates shared by every
// entity schema. Each predicate is side-effect free and returns an empty
// string on success or a human-readable reason on failure; callers collect
// the reasons into a single ValidationError per entity.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	idiomaRegex   = regexp.MustCompile(`^[a-z]{2}$`)
)

// isoCurrencies contains the ISO 4217 currency codes accepted by the API.
var isoCurrencies = map[string]bool{
	"AED": true, "AFN": true, "ALL": true, "AMD": true, "ANG": true,
	"AOA": true, "ARS": true, "AUD": true, "AWG": true, "AZN": true,
	"BAM": true, "BBD": true, "BDT": true, "BGN": true, "BHD": true,
	"BIF": true, "BMD": true, "BND": true, "BOB": true, "BRL": true,
	"BSD": true, "BTN": true, "BWP": true, "BYN": true, "BZD": true,
	"CAD": true, "CDF": true, "CHF": true, "CLP": true, "CNY": true,
	"COP": true, "CRC": true, "CUP": true, "CVE": true, "CZK": true,
	"DJF": true, "DKK": true, "DOP": true, "DZD": true, "EGP": true,
	"ERN": true, "ETB": true, "EUR": true, "FJD": true, "FKP": true,
	"GBP": true, "GEL": true, "GHS": true, "GIP": true, "GMD": true,
	"GNF": true, "GTQ": true, "GYD": true, "HKD": true, "HNL": true,
	"HRK": true, "HTG": true, "HUF": true, "IDR": true, "ILS": true,
	"INR": true, "IQD": true, "IRR": true, "ISK": true, "JMD": true,
	"JOD": true, "JPY": true, "KES": true, "KGS": true, "KHR": true,
	"KMF": true, "KPW": true, "KRW": true, "KWD": true, "KYD": true,
	"KZT": true, "LAK": true, "LBP": true, "LKR": true, "LRD": true,
	"LSL": true, "LYD": true, "MAD": true, "MDL": true, "MGA": true,
	"MKD": true, "MMK": true, "MNT": true, "MOP": true, "MRU": true,
	"MUR": true, "MVR": true, "MWK": true, "MXN": true, "MYR": true,
	"MZN": true, "NAD": true, "NGN": true, "NIO": true, "NOK": true,
	"NPR": true, "NZD": true, "OMR": true, "PAB": true, "PEN": true,
	"PGK": true, "PHP": true, "PKR": true, "PLN": true, "PYG": true,
	"QAR": true, "RON": true, "RSD": true, "RUB": true, "RWF": true,
	"SAR": true, "SBD": true, "SCR": true, "SDG": true, "SEK": true,
	"SGD": true, "SHP": true, "SLE": true, "SOS": true, "SRD": true,
	"SSP": true, "STN": true, "SVC": true, "SYP": true, "SZL": true,
	"THB": true, "TJS": true, "TMT": true, "TND": true, "TOP": true,
	"TRY": true, "TTD": true, "TWD": true, "TZS": true, "UAH": true,
	"UGX": true, "USD": true, "UYU": true, "UZS": true, "VES": true,
	"VND": true, "VUV": true, "WST": true, "XAF": true, "XCD": true,
	"XOF": true, "XPF": true, "YER": true, "ZAR": true, "ZMW": true,
	"ZWL": true,
}

// NonEmptyTrimmed fails when the string is empty or only whitespace.
func NonEmptyTrimmed(v string) string {
	if strings.TrimSpace(v) == "" {
		return "no puede estar vacío o contener solo espacios"
	}
	return ""
}

// EnumMember fails when v is not one of the allowed values. The comparison
// is done against the already-normalized (uppercase) value.
func EnumMember(v string, allowed []string) string {
	for _, a := range allowed {
		if v == a {
			return ""
		}
	}
	return fmt.Sprintf("debe ser uno de: %s", strings.Join(allowed, ", "))
}

// HexColor fails when v is not "#" followed by exactly six hex digits.
func HexColor(v string) string {
	if !hexColorRegex.MatchString(v) {
		return "debe ser un color hexadecimal válido (ej: #6B7280)"
	}
	return ""
}

// ISOCurrencyCode fails when v is not a known ISO 4217 code
// (three uppercase letters).
func ISOCurrencyCode(v string) string {
	if !isoCurrencies[v] {
		return "debe ser un código ISO de moneda de 3 letras mayúsculas (ej: USD, EUR, MXN)"
	}
	return ""
}

// ISOLanguageCode fails when v is not two lowercase letters.
func ISOLanguageCode(v string) string {
	if !idiomaRegex.MatchString(v) {
		return "debe ser un código de idioma de 2 letras minúsculas (ej: es, en)"
	}
	return ""
}

// DayOfMonth fails when v is outside 1..31.
func DayOfMonth(v int) string {
	if v < 1 || v > 31 {
		return "debe estar entre 1 y 31"
	}
	return ""
}

// Percentage fails when v is outside 0..100.
func Percentage(v decimal.Decimal) string {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		return "debe estar entre 0 y 100"
	}
	return ""
}

// PositiveAmount fails when v is zero or negative.
func PositiveAmount(v decimal.Decimal) string {
	if !v.IsPositive() {
		return "debe ser un valor positivo"
	}
	return ""
}

// NonNegativeAmount fails when v is negative.
func NonNegativeAmount(v decimal.Decimal) string {
	if v.IsNegative() {
		return "no puede ser negativo"
	}
	return ""
}
