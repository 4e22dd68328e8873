// Package utils provides display formatting shared by the CLI and the API.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatPrice formats a USD price with precision scaled to its magnitude:
// 2 decimals from 1, 4 from 0.01, 8 below. e.g., 3012.5 → "3,012.50"
func FormatPrice(price float64) string {
	switch abs := math.Abs(price); {
	case abs >= 1:
		return FormatFull(price, 2)
	case abs >= 0.01:
		return FormatFull(price, 4)
	default:
		return FormatFull(price, 8)
	}
}

// FormatCompact formats a number with a K/M/B suffix.
// e.g., 1500000 → "1.50M", 950 → "950.00"
func FormatCompact(n float64, decimals int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	switch {
	case n >= 1e9:
		return sign + strconv.FormatFloat(n/1e9, 'f', decimals, 64) + "B"
	case n >= 1e6:
		return sign + strconv.FormatFloat(n/1e6, 'f', decimals, 64) + "M"
	case n >= 1e3:
		return sign + strconv.FormatFloat(n/1e3, 'f', decimals, 64) + "K"
	default:
		return sign + strconv.FormatFloat(n, 'f', decimals, 64)
	}
}

// FormatFull formats a number with thousands separators.
// e.g., 1234567.891 → "1,234,567.89"
func FormatFull(n float64, decimals int) string {
	s := strconv.FormatFloat(math.Abs(n), 'f', decimals, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	out := groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	if n < 0 && strings.Trim(out, "0.,") != "" {
		return "-" + out
	}
	return out
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// ShortAddress abbreviates an address as 0x1234...abcd. Addresses shorter
// than 10 characters are returned unchanged; an empty one becomes "-".
func ShortAddress(addr string) string {
	if addr == "" {
		return "-"
	}
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// FormatAge formats the time since t in its largest whole unit.
// e.g., "45s", "12m", "5h", "3d", "2y". A nil t yields "-".
func FormatAge(t *time.Time, now time.Time) string {
	if t == nil {
		return "-"
	}
	d := now.Sub(*t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dy", int(d.Hours()/(24*365)))
	}
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
