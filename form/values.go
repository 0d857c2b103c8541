package form

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses numeric input text, yielding NaN for empty or invalid input.
func ParseNumber(text string) float64 {

	num, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return math.NaN()
	}
	return num
}

// FormatNumber is the inverse of ParseNumber for display.
func FormatNumber(num float64) string {
	if math.IsNaN(num) {
		return ""
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// splitList splits comma separated text, dropping blanks.
func splitList(text string) []string {

	list := []string{}
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			list = append(list, item)
		}
	}
	return list
}

func joinList(list []string) string {
	return strings.Join(list, ", ")
}
