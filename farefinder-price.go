package farefinder

import (
	"fmt"
	"math"
)

type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize computes price statistics, ignoring NaN prices.
func Summarize(table FlightTable) Summary {
	result := Summary{}
	total := 0.0
	for _, row := range table {
		if math.IsNaN(row.Price) {
			continue
		}
		if result.Count == 0 || row.Price < result.Min {
			result.Min = row.Price
		}
		if result.Count == 0 || row.Price > result.Max {
			result.Max = row.Price
		}
		total += row.Price
		result.Count++
	}
	if result.Count > 0 {
		result.Mean = total / float64(result.Count)
	}
	return result
}

// PriceRatio places price on the [0,1] scale between min and max. A flat
// range maps everything to 0.
func PriceRatio(price, min, max float64) float64 {
	if !(max > min) {
		return 0
	}
	ratio := (price - min) / (max - min)
	return math.Max(0, math.Min(1, ratio))
}

type Color struct {
	R, G, B uint8
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PriceColor shades a price from green (cheapest) to red (most expensive).
// ok is false for a NaN price, which gets no colour.
func PriceColor(price, min, max float64) (c Color, ok bool) {
	if math.IsNaN(price) {
		return Color{}, false
	}
	ratio := PriceRatio(price, min, max)
	return Color{
		R: uint8(math.Round(255 * ratio)),
		G: uint8(math.Round(255 * (1 - ratio))),
		B: 100,
	}, true
}
