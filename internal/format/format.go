package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

// Currency formats an amount for display.
// Example: Currency(12500, "RWF") => "12,500 RWF"
func Currency(amount int64, currency string) string {
	currency = strings.ToUpper(currency)
	switch currency {
	case "RWF", "":
		// francs have no minor unit in practice
		return thousandSep(amount) + " RWF"
	case "USD":
		// assume cents; format with 2 decimals
		neg := amount < 0
		if neg {
			amount = -amount
		}
		head := thousandSep(amount / 100)
		tail := fmt.Sprintf("%02d", amount%100)
		if neg {
			return "-$" + head + "." + tail
		}
		return "$" + head + "." + tail
	default:
		return fmt.Sprintf("%s %s", thousandSep(amount), currency)
	}
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

var rwMonths = [...]string{
	"Mutarama", "Gashyantare", "Werurwe", "Mata", "Gicurasi", "Kamena",
	"Nyakanga", "Kanama", "Nzeri", "Ukwakira", "Ugushyingo", "Ukuboza",
}

// Date formats t in a locale-friendly short form.
func Date(t time.Time, l i18n.Locale) string {
	switch l {
	case i18n.RW:
		return fmt.Sprintf("%d %s %d", t.Day(), rwMonths[t.Month()-1], t.Year())
	default:
		return t.Format("Jan 2, 2006")
	}
}
