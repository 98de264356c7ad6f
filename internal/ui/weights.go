package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// formatWeights renders weights as an editable comma-separated list.
func formatWeights(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'g', 4, 64)
	}
	return strings.Join(parts, ", ")
}

// parseWeights reads a list of positive numbers separated by commas or
// whitespace.
func parseWeights(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no weights given")
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", f)
		}
		if v <= 0 {
			return nil, fmt.Errorf("weight %q must be positive", f)
		}
		out = append(out, v)
	}
	return out, nil
}
