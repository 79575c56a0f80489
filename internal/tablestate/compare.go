package tablestate

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// DateLayouts lists the accepted date formats in the order they are tried.
// Day/month/year comes before ISO year-month-day.
var DateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate interprets v as a date using DateLayouts.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range DateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// ParseAmount interprets v as a number. Strings may carry currency symbols or
// codes, thousands separators and accounting-style parentheses for negatives.
func ParseAmount(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromUint64(uint64(n)), true
	case uint8:
		return decimal.NewFromUint64(uint64(n)), true
	case uint16:
		return decimal.NewFromUint64(uint64(n)), true
	case uint32:
		return decimal.NewFromUint64(uint64(n)), true
	case uint64:
		return decimal.NewFromUint64(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case json.Number:
		return parseAmountString(n.String())
	case string:
		return parseAmountString(n)
	}
	return decimal.Decimal{}, false
}

func parseAmountString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	start := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || r == '-' || r == '+' || r == '('
	})
	if start < 0 {
		return decimal.Decimal{}, false
	}
	// A leading ".5" keeps its point.
	if start > 0 && s[start-1] == '.' && !affixLetterEnd(s[:start-1]) {
		start--
	}
	end := strings.LastIndexFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || r == ')'
	})
	if end < start {
		return decimal.Decimal{}, false
	}
	prefix, body, suffix := s[:start], s[start:end+1], s[end+1:]
	if !currencyAffix(prefix) || !currencyAffix(suffix) {
		return decimal.Decimal{}, false
	}
	// "ACC-100" is a code, not a negative amount.
	if affixLetterEnd(prefix) && (body[0] == '-' || body[0] == '+') {
		return decimal.Decimal{}, false
	}

	var b strings.Builder
	for _, r := range body {
		switch {
		case unicode.IsDigit(r), r == '.', r == '-', r == '+', r == '(', r == ')', r == 'e', r == 'E':
			b.WriteRune(r)
		case r == ',', r == '\'', r == '_', unicode.IsSpace(r):
			// thousands separators
		case unicode.Is(unicode.Sc, r):
			// "-$5"
		default:
			return decimal.Decimal{}, false
		}
	}
	clean := b.String()
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}
	if clean == "" || strings.ContainsAny(clean, "()") {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// currencyAffix reports whether s can surround an amount: currency symbols,
// a code of at most three letters ("Rs.", "USD"), percent signs and spaces.
func currencyAffix(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.Is(unicode.Sc, r), unicode.IsSpace(r), r == '.', r == '%':
		default:
			return false
		}
	}
	return letters <= 3
}

func affixLetterEnd(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsLetter(r[len(r)-1])
}

// ParseBool interprets v as a boolean.
func ParseBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case *bool:
		if b == nil {
			return false, false
		}
		return *b, true
	}
	return false, false
}

// Stringify coerces a field value to the string used for filtering and
// searching.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// sortKey is a value pre-parsed for one kind. Values that failed to parse
// carry ok=false and sort after every parsed value.
type sortKey struct {
	ok   bool
	text string
	num  decimal.Decimal
	when time.Time
	flag bool
}

func keyFor(kind Kind, v any, present bool) sortKey {
	text := ""
	if present {
		text = Stringify(v)
	}
	k := sortKey{text: text}
	if !present {
		return k
	}
	switch kind {
	case KindDate:
		k.when, k.ok = ParseDate(v)
	case KindNumber, KindCurrency:
		k.num, k.ok = ParseAmount(v)
	case KindBool:
		k.flag, k.ok = ParseBool(v)
	default:
		k.ok = true
	}
	return k
}

func compareKeys(kind Kind, a, b sortKey) int {
	if a.ok != b.ok {
		if a.ok {
			return -1
		}
		return 1
	}
	if !a.ok {
		return cmp.Compare(a.text, b.text)
	}
	switch kind {
	case KindDate:
		return a.when.Compare(b.when)
	case KindNumber, KindCurrency:
		return a.num.Cmp(b.num)
	case KindBool:
		switch {
		case a.flag == b.flag:
			return 0
		case !a.flag:
			return -1
		default:
			return 1
		}
	default:
		return cmp.Compare(a.text, b.text)
	}
}

// inferKind picks a kind for a column from its present, non-blank values.
// A kind wins when more than half of those values parse as it, checked in
// the order date, number, boolean; the values that do not parse sort after
// the ones that do. Anything else is text.
func inferKind(values []any) Kind {
	var seen, dates, nums, flags int
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		seen++
		if _, ok := ParseDate(v); ok {
			dates++
		}
		if _, ok := ParseAmount(v); ok {
			nums++
		}
		if _, ok := ParseBool(v); ok {
			flags++
		}
	}
	switch {
	case seen == 0:
		return KindText
	case 2*dates > seen:
		return KindDate
	case 2*nums > seen:
		return KindNumber
	case 2*flags > seen:
		return KindBool
	default:
		return KindText
	}
}

// CompareValues orders two values as the given kind. KindAuto infers the kind
// from the pair.
func CompareValues(kind Kind, a, b any) int {
	if kind == KindAuto {
		kind = inferKind([]any{a, b})
	}
	return compareKeys(kind, keyFor(kind, a, a != nil), keyFor(kind, b, b != nil))
}
