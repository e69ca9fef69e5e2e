package report

import (
	"github.com/montanaflynn/stats"
	"github.com/uzretail/storebot/internal/domain"
)

// QuantitySummary aggregates the per-product quantity distribution.
type QuantitySummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SummarizeQuantities computes the distribution stats over product
// quantities. An empty product list yields a zero summary.
func SummarizeQuantities(products []domain.Product) QuantitySummary {
	if len(products) == 0 {
		return QuantitySummary{}
	}
	data := make(stats.Float64Data, 0, len(products))
	for _, p := range products {
		data = append(data, float64(p.Quantity))
	}
	var s QuantitySummary
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	return s
}
