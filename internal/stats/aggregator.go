// Package stats computes per-metric market statistics over a canonical
// comparable set. Everything here is pure computation over in-memory
// data; an empty or fully-null input yields a zeroed statistic, never
// NaN or a division error.
package stats

import (
	"math"
	"sort"

	"github.com/mkravets/compscan/internal/model"
)

// Metric names one aggregatable measure.
type Metric string

const (
	MetricListPrice    Metric = "list_price"
	MetricSoldPrice    Metric = "sold_price"
	MetricSqft         Metric = "sqft"
	MetricDaysOnMarket Metric = "days_on_market"
	MetricPricePerSqft Metric = "price_per_sqft"
	MetricPricePerAcre Metric = "price_per_acre"
)

// StandardMetrics are the metrics every report carries.
var StandardMetrics = []Metric{
	MetricListPrice, MetricSoldPrice, MetricSqft,
	MetricDaysOnMarket, MetricPricePerSqft, MetricPricePerAcre,
}

// Aggregator computes market statistics with the configured sanity
// bounds for derived metrics.
type Aggregator struct {
	cfg model.StatsConfig
}

// New creates an aggregator. Zero-valued bounds fall back to defaults
// so a hand-constructed config cannot disable the guards by accident.
func New(cfg model.StatsConfig) *Aggregator {
	def := model.DefaultConfig().Stats
	if cfg.MinLotAcres <= 0 {
		cfg.MinLotAcres = def.MinLotAcres
	}
	if cfg.MinPricePerAcre <= 0 {
		cfg.MinPricePerAcre = def.MinPricePerAcre
	}
	if cfg.MaxPricePerAcre <= 0 {
		cfg.MaxPricePerAcre = def.MaxPricePerAcre
	}
	return &Aggregator{cfg: cfg}
}

// Aggregate computes one metric's statistic across the comparables.
// Derived metrics are computed per comparable first and then
// aggregated; they are never a ratio of pre-aggregated sums.
func (a *Aggregator) Aggregate(comps []model.Comparable, metric Metric) model.MarketStatistic {
	var values []float64
	for _, c := range comps {
		if v, ok := a.metricValue(c, metric); ok {
			values = append(values, v)
		}
	}
	return summarize(values)
}

// All computes every standard metric.
func (a *Aggregator) All(comps []model.Comparable) map[string]model.MarketStatistic {
	out := make(map[string]model.MarketStatistic, len(StandardMetrics))
	for _, m := range StandardMetrics {
		out[string(m)] = a.Aggregate(comps, m)
	}
	return out
}

func (a *Aggregator) metricValue(c model.Comparable, metric Metric) (float64, bool) {
	switch metric {
	case MetricListPrice:
		return deref(c.ListPrice)
	case MetricSoldPrice:
		return deref(c.SoldPrice)
	case MetricSqft:
		return deref(c.Sqft)
	case MetricDaysOnMarket:
		return deref(c.DaysOnMarket)
	case MetricPricePerSqft:
		price, ok := salePrice(c)
		if !ok {
			return 0, false
		}
		sqft, ok := deref(c.Sqft)
		if !ok || sqft <= 0 {
			return 0, false
		}
		return price / sqft, true
	case MetricPricePerAcre:
		price, ok := salePrice(c)
		if !ok {
			return 0, false
		}
		acres, ok := deref(c.LotAcres)
		if !ok || acres < a.cfg.MinLotAcres {
			return 0, false
		}
		ratio := price / acres
		// Implausible ratios mean bad lot data; drop the value from
		// this statistic only, the comparable itself stays in the set.
		if ratio < a.cfg.MinPricePerAcre || ratio > a.cfg.MaxPricePerAcre {
			return 0, false
		}
		return ratio, true
	default:
		return 0, false
	}
}

// salePrice is the price basis for derived metrics: the sold price when
// the transaction closed, the list price otherwise.
func salePrice(c model.Comparable) (float64, bool) {
	if v, ok := deref(c.SoldPrice); ok {
		return v, true
	}
	return deref(c.ListPrice)
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

func summarize(values []float64) model.MarketStatistic {
	if len(values) == 0 {
		return model.MarketStatistic{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return model.MarketStatistic{
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Average: sum / float64(len(sorted)),
		Median:  median(sorted),
		Samples: len(sorted),
	}
}

// median expects an ascending-sorted slice: the central value for odd
// counts, the mean of the two central values for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
