package adminkit

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered whenever a formatter receives missing or invalid input.
const Placeholder = "—"

// Currency codes understood by FormatValue.
const (
	CurrencyUSD = "USD"
	CurrencyVND = "VND"
)

// Status keywords of the commission lifecycle.
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	usdPrinter = message.NewPrinter(language.English)
	vndPrinter = message.NewPrinter(language.Vietnamese)
)

var statusLabels = map[string]string{
	StatusRequested: "requested",
	StatusConfirmed: "confirmed",
	StatusPaid:      "paid",
}

// FormatDate renders a date-like string as zero-padded DD/MM/YYYY HH:mm in
// local time. Empty input yields the placeholder; unparseable input is
// echoed back unchanged.
func FormatDate(input string) string {
	if input == "" {
		return Placeholder
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, input); err == nil {
			return parsed.Local().Format("02/01/2006 15:04")
		}
	}

	return input
}

// FormatValue renders a numeric amount as a locale-grouped integer with the
// currency symbol: "$1,234" for USD, "1.234 ₫" for VND. Nil, empty, and
// non-numeric input yield the placeholder.
func FormatValue(value any, currency ...string) string {
	amount, ok := toFloat(value)
	if !ok {
		return Placeholder
	}

	code := CurrencyUSD
	if len(currency) > 0 && currency[0] != "" {
		code = currency[0]
	}

	if code == CurrencyVND {
		return vndPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(0))) + " ₫"
	}

	return "$" + usdPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatStatus maps a lifecycle keyword to its display label, capitalized.
// Unknown keywords pass through, also capitalized.
func FormatStatus(status string) string {
	label, ok := statusLabels[status]
	if !ok {
		label = status
	}
	return capitalize(label)
}

// StatusColor maps a lifecycle keyword to its badge color.
func StatusColor(status string) string {
	switch status {
	case StatusRequested:
		return "yellow"
	case StatusConfirmed:
		return "blue"
	case StatusPaid:
		return "green"
	default:
		return "gray"
	}
}

// TemplateHelpers returns the formatter set for use with a view engine's
// global data, keyed the way templates reference them.
func TemplateHelpers() map[string]any {
	return map[string]any{
		"format_date":   FormatDate,
		"format_value":  FormatValue,
		"format_status": FormatStatus,
		"status_color":  StatusColor,
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// capitalize uppercases the first rune only, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
