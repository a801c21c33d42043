package utils

import (
	"regexp"
	"strconv"

	"product-chatbot-backend/models"
)

var (
	betweenPattern = regexp.MustCompile(`(?i)between\s+(\d+(?:\.\d+)?)\s+and\s+(\d+(?:\.\d+)?)`)
	underPattern   = regexp.MustCompile(`(?i)(?:under|below|less than)\s+\$?(\d+(?:\.\d+)?)`)
	overPattern    = regexp.MustCompile(`(?i)(?:over|above|more than)\s+\$?(\d+(?:\.\d+)?)`)
)

// ExtractPriceRange parses a free-text message for a numeric price
// constraint. Patterns are tried in a fixed order and only the first
// match is honored: "between A and B", then "under/below/less than X",
// then "over/above/more than X". No match yields an unbounded range.
func ExtractPriceRange(text string) models.PriceRange {
	if m := betweenPattern.FindStringSubmatch(text); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		return models.PriceRange{Low: &low, High: &high}
	}
	if m := underPattern.FindStringSubmatch(text); m != nil {
		high, _ := strconv.ParseFloat(m[1], 64)
		return models.PriceRange{High: &high}
	}
	if m := overPattern.FindStringSubmatch(text); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		return models.PriceRange{Low: &low}
	}
	return models.PriceRange{}
}
