package extract

import "github.com/mkravets/compscan/internal/model"

// Metric names one canonical numeric attribute of a comparable.
type Metric string

const (
	MetricListPrice    Metric = "list_price"
	MetricSoldPrice    Metric = "sold_price"
	MetricSqft         Metric = "sqft"
	MetricDaysOnMarket Metric = "days_on_market"
	MetricBeds         Metric = "beds"
	MetricBaths        Metric = "baths"
)

// fieldRules is the extraction table. Candidate order encodes field
// precedence across provider endpoints and vintages; the first present,
// parseable, valid value wins.
var fieldRules = map[Metric]fieldRule{
	MetricListPrice: {
		paths: []string{
			"listPrice", "ListPrice", "list_price",
			"listingPrice", "currentPrice", "price",
			"details.listPrice",
		},
		valid: positive,
	},
	MetricSoldPrice: {
		paths: []string{
			"soldPrice", "closePrice", "ClosePrice",
			"salePrice", "sold_price", "lastSoldPrice",
		},
		valid: positive,
	},
	MetricSqft: {
		paths: []string{
			"sqft", "squareFeet", "livingArea", "livingAreaSqFt",
			"buildingAreaTotal", "details.sqft", "details.squareFootage",
		},
		valid: positive,
	},
	MetricDaysOnMarket: {
		paths: []string{
			"daysOnMarket", "DaysOnMarket", "dom", "cdom",
			"cumulativeDaysOnMarket", "details.daysOnMarket",
		},
		valid: nonNegative,
	},
	MetricBeds: {
		paths: []string{
			"beds", "bedrooms", "numBedrooms", "BedroomsTotal",
			"details.numBedrooms",
		},
		valid: nonNegative,
	},
	MetricBaths: {
		paths: []string{
			"baths", "bathrooms", "numBathrooms", "BathroomsTotalInteger",
			"details.numBathrooms",
		},
		valid: nonNegative,
	},
}

// Number extracts one canonical metric from a raw record, or nil when no
// candidate field holds a valid value.
func Number(rec model.RawRecord, metric Metric) *float64 {
	rule, ok := fieldRules[metric]
	if !ok {
		return nil
	}
	return numberFrom(rec, rule)
}
