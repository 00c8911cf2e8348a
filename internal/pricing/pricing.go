// Package pricing converts and renders prices. Prices are stored in CLP;
// the USD display price is derived from a configured exchange rate, always
// rounded up so the shown amount never under-represents the cost.
package pricing

import (
	"math"
	"strconv"
)

// Currency tags the display currency.
type Currency string

const (
	CLP Currency = "CLP"
	USD Currency = "USD"
)

// Formatter converts CLP prices for display.
type Formatter struct {
	rate float64 // CLP per USD
}

// NewFormatter creates a Formatter with the given CLP-per-USD rate.
func NewFormatter(rate float64) *Formatter {
	return &Formatter{rate: rate}
}

// Convert returns the numeric display price: the CLP price unchanged, or
// ceil(price/rate) for USD.
func (f *Formatter) Convert(price float64, currency Currency) float64 {
	if currency == USD {
		return math.Ceil(price / f.rate)
	}
	return price
}

// Format renders the price with the currency's conventional thousands
// rendering: "$1.500.000" for CLP, "US$1,579" for USD.
func (f *Formatter) Format(price float64, currency Currency) string {
	n := int64(math.Round(f.Convert(price, currency)))
	if currency == USD {
		return "US$" + group(n, ',')
	}
	return "$" + group(n, '.')
}

// group inserts a thousands separator into the decimal rendering of n.
func group(n int64, sep byte) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
