package utils

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// PadTruncate fits a string to an exact visual width. Double-width scripts
// (CJK ideographs, kana, fullwidth forms) count as two columns. Strings wider
// than the budget are cut at the last character boundary that keeps the total
// width, ellipsis included, within it; shorter strings are right-padded with
// spaces to the exact width.
func PadTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// VisualWidth returns the terminal column count of a string.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FormatSizeMB renders a byte count as megabytes with two decimals.
func FormatSizeMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}
