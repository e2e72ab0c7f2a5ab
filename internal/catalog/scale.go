package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// quantityPattern matches a leading quantity: "1 1/2", "3/4", "2" or "0.5".
var quantityPattern = regexp.MustCompile(`^\s*(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?)\s*(.*)$`)

// ParseQuantity splits a measure into its leading amount and the rest.
// ok is false when the measure does not start with a number.
func ParseQuantity(measure string) (qty float64, rest string, ok bool) {
	m := quantityPattern.FindStringSubmatch(measure)
	if m == nil {
		return 0, measure, false
	}
	num := m[1]
	rest = strings.TrimSpace(m[2])

	whole := 0.0
	if fields := strings.Fields(num); len(fields) == 2 {
		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, measure, false
		}
		whole, num = w, fields[1]
	}
	if a, b, found := strings.Cut(num, "/"); found {
		n, err1 := strconv.ParseFloat(a, 64)
		d, err2 := strconv.ParseFloat(b, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, measure, false
		}
		return whole + n/d, rest, true
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, measure, false
	}
	return whole + v, rest, true
}

var eighths = map[int]string{1: "1/8", 2: "1/4", 3: "3/8", 4: "1/2", 5: "5/8", 6: "3/4", 7: "7/8"}

// FormatQuantity rounds to the nearest eighth and writes common fractions
// the way a cook reads them ("1 1/2", "3/4", "2").
func FormatQuantity(q float64) string {
	if q <= 0 {
		return "0"
	}
	n := int(math.Round(q * 8))
	if n == 0 {
		return strconv.FormatFloat(q, 'f', 2, 64)
	}
	whole, frac := n/8, n%8
	switch {
	case frac == 0:
		return strconv.Itoa(whole)
	case whole == 0:
		return eighths[frac]
	default:
		return fmt.Sprintf("%d %s", whole, eighths[frac])
	}
}

// ScaleIngredients rescales each measure from one serving count to
// another. Measures without a leading number are kept as written.
func ScaleIngredients(lines []domain.IngredientLine, from, to int) ([]domain.IngredientLine, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("servings %d -> %d: %w", from, to, domain.ErrInvalidInput)
	}
	factor := float64(to) / float64(from)
	out := make([]domain.IngredientLine, len(lines))
	for i, l := range lines {
		out[i] = l
		q, rest, ok := ParseQuantity(l.Measure)
		if !ok || from == to {
			continue
		}
		scaled := FormatQuantity(q * factor)
		if rest != "" {
			scaled += " " + rest
		}
		out[i].Measure = scaled
	}
	return out, nil
}
