package model

// Comparable is the canonical form of a property record after filtering,
// extraction, and status classification. Numeric fields are pointers:
// nil means the value could not be recovered from the raw record, which
// is deliberately distinct from a real zero.
type Comparable struct {
	Address   string  `json:"address"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	MLSNumber string  `json:"mls_number,omitempty"`

	ListPrice    *float64 `json:"list_price,omitempty"`
	SoldPrice    *float64 `json:"sold_price,omitempty"`
	Sqft         *float64 `json:"sqft,omitempty"`
	LotAcres     *float64 `json:"lot_acres,omitempty"`
	Beds         *float64 `json:"beds,omitempty"`
	Baths        *float64 `json:"baths,omitempty"`
	DaysOnMarket *float64 `json:"days_on_market,omitempty"`

	Status CanonicalStatus `json:"status"`

	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Photos      []string     `json:"photos,omitempty"`
	Remarks     string       `json:"remarks,omitempty"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// CanonicalStatus is the normalized listing state. Raw provider status
// strings never leave the classifier; every comparable carries exactly
// one of these values.
type CanonicalStatus string

const (
	StatusActive    CanonicalStatus = "active"
	StatusPending   CanonicalStatus = "pending"
	StatusClosed    CanonicalStatus = "closed"
	StatusLeasing   CanonicalStatus = "leasing"
	StatusWithdrawn CanonicalStatus = "withdrawn"
	StatusExpired   CanonicalStatus = "expired"
	StatusUnknown   CanonicalStatus = "unknown"
)

// MarketStatistic is the aggregate over one numeric metric across a
// comparable set. A zero-valued statistic (Samples == 0) means no usable
// inputs, never a division error.
type MarketStatistic struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Samples int     `json:"samples"`
}
