package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// priceRegex finds the first number in a price label, with optional thousands separators and decimals.
var priceRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts the numeric amount from a display price such as "$1,299.00" or "From $99".
// It returns false when the label holds no number.
func ParsePrice(priceStr string) (float64, bool) {
	found := priceRegex.FindString(priceStr)
	if found == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(found, ",", ""), 64)
	if err != nil {
		logrus.WithField("price", priceStr).Debugf("ParsePrice: could not parse %q: %v", found, err)
		return 0, false
	}
	return price, true
}
