package rules

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNonEmptyTrimmed(t *testing.T) {
	if reason := NonEmptyTrimmed("Nómina"); reason != "" {
		t.Errorf("expected pass, got %q", reason)
	}
	if reason := NonEmptyTrimmed("   "); reason == "" {
		t.Error("expected failure for whitespace-only string")
	}
	if reason := NonEmptyTrimmed(""); reason == "" {
		t.Error("expected failure for empty string")
	}
}

func TestEnumMember(t *testing.T) {
	allowed := []string{"INGRESO", "GASTO", "TRANSFERENCIA", "AJUSTE"}

	if reason := EnumMember("GASTO", allowed); reason != "" {
		t.Errorf("expected pass, got %q", reason)
	}
	if reason := EnumMember("gasto", allowed); reason == "" {
		t.Error("expected failure for non-normalized value")
	}
	if reason := EnumMember("RETIRO", allowed); reason == "" {
		t.Error("expected failure for unknown value")
	}
}

func TestHexColor(t *testing.T) {
	valid := []string{"#3B82F6", "#ef4444", "#000000"}
	for _, v := range valid {
		if reason := HexColor(v); reason != "" {
			t.Errorf("HexColor(%q): expected pass, got %q", v, reason)
		}
	}

	invalid := []string{"3B82F6", "#3B82F", "#3B82F6A", "#GGGGGG", "", "#fff"}
	for _, v := range invalid {
		if reason := HexColor(v); reason == "" {
			t.Errorf("HexColor(%q): expected failure", v)
		}
	}
}

func TestISOCurrencyCode(t *testing.T) {
	for _, v := range []string{"USD", "MXN", "EUR", "CRC"} {
		if reason := ISOCurrencyCode(v); reason != "" {
			t.Errorf("ISOCurrencyCode(%q): expected pass, got %q", v, reason)
		}
	}
	for _, v := range []string{"usd", "US", "USDT", "XXX", ""} {
		if reason := ISOCurrencyCode(v); reason == "" {
			t.Errorf("ISOCurrencyCode(%q): expected failure", v)
		}
	}
}

func TestISOLanguageCode(t *testing.T) {
	for _, v := range []string{"es", "en", "fr"} {
		if reason := ISOLanguageCode(v); reason != "" {
			t.Errorf("ISOLanguageCode(%q): expected pass, got %q", v, reason)
		}
	}
	for _, v := range []string{"ES", "esp", "e", ""} {
		if reason := ISOLanguageCode(v); reason == "" {
			t.Errorf("ISOLanguageCode(%q): expected failure", v)
		}
	}
}

func TestDayOfMonth(t *testing.T) {
	for _, v := range []int{1, 15, 31} {
		if reason := DayOfMonth(v); reason != "" {
			t.Errorf("DayOfMonth(%d): expected pass, got %q", v, reason)
		}
	}
	for _, v := range []int{0, 32, -1} {
		if reason := DayOfMonth(v); reason == "" {
			t.Errorf("DayOfMonth(%d): expected failure", v)
		}
	}
}

func TestPercentage(t *testing.T) {
	for _, v := range []string{"0", "18.5", "100"} {
		if reason := Percentage(decimal.RequireFromString(v)); reason != "" {
			t.Errorf("Percentage(%s): expected pass, got %q", v, reason)
		}
	}
	for _, v := range []string{"-0.01", "100.01"} {
		if reason := Percentage(decimal.RequireFromString(v)); reason == "" {
			t.Errorf("Percentage(%s): expected failure", v)
		}
	}
}

func TestPositiveAmount(t *testing.T) {
	if reason := PositiveAmount(decimal.RequireFromString("0.01")); reason != "" {
		t.Errorf("expected pass, got %q", reason)
	}
	if reason := PositiveAmount(decimal.Zero); reason == "" {
		t.Error("expected failure for zero")
	}
	if reason := PositiveAmount(decimal.RequireFromString("-5")); reason == "" {
		t.Error("expected failure for negative amount")
	}
}

func TestNonNegativeAmount(t *testing.T) {
	if reason := NonNegativeAmount(decimal.Zero); reason != "" {
		t.Errorf("expected pass for zero, got %q", reason)
	}
	if reason := NonNegativeAmount(decimal.RequireFromString("-0.01")); reason == "" {
		t.Error("expected failure for negative amount")
	}
}
