package models

import (
	"strconv"
	"strings"
	"unicode"
)

type Price struct {
	Base        float64 `json:"base"`
	Shipping    float64 `json:"shipping"`
	Tax         float64 `json:"tax"`
	Discounts   float64 `json:"discounts"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
	TotalString string  `json:"totalString,omitempty"`
}

// Amount is the final price when known, otherwise the base price.
func (p Price) Amount() float64 {
	if p.Total > 0 {
		return p.Total
	}
	return p.Base
}

// ParsePrice splits a display price such as "$1,299.99" or "1.299,99 €" into its amount and currency.
// The last separator is treated as the decimal point, earlier ones as thousands separators.
func ParsePrice(price string) (float64, string, error) {
	price = strings.TrimSpace(price)

	if price == "" {
		return 0, "", nil
	}

	currency, number := "", ""

	for _, char := range price {
		currency, number = processCharacter(char, currency, number)
	}

	float, err := strconv.ParseFloat(dropThousands(number), 64)

	if err != nil {
		return 0, "", err
	}

	return float, currency, nil
}

func processCharacter(char rune, currency, number string) (string, string) {
	if isSpaceOrPlus(char) {
		return currency, number
	} else if isSeparatorChar(char) {
		number += "."
	} else if unicode.IsDigit(char) {
		number += string(char)
	} else {
		currency += string(char)
	}
	return currency, number
}

// dropThousands keeps only the last "." of a number built by processCharacter.
func dropThousands(number string) string {
	last := strings.LastIndex(number, ".")
	if last < 0 {
		return number
	}
	return strings.ReplaceAll(number[:last], ".", "") + number[last:]
}

func isSeparatorChar(char rune) bool {
	return char == '.' || char == ','
}

func isSpaceOrPlus(char rune) bool {
	return char == ' ' || char == '+'
}
