package extract

import (
	"github.com/mkravets/compscan/internal/model"
)

var (
	mlsNumberPaths = []string{"mlsNumber", "mls_number", "listingId", "mls"}
	remarksPaths   = []string{"remarks", "publicRemarks", "description", "details.description"}
	photoPaths     = []string{"photos", "images", "media"}
	latPaths       = []string{"latitude", "lat", "map.latitude"}
	lngPaths       = []string{"longitude", "lng", "map.longitude"}
)

// BuildComparable reduces one raw record to canonical form. Status is
// left Unknown; the caller classifies it from the raw status fields.
// Never panics, whatever shape the record has.
func BuildComparable(rec model.RawRecord) model.Comparable {
	return model.Comparable{
		Address:   Address(rec),
		City:      City(rec),
		State:     State(rec),
		Zip:       Zip(rec),
		MLSNumber: firstString(rec, mlsNumberPaths),

		ListPrice:    Number(rec, MetricListPrice),
		SoldPrice:    Number(rec, MetricSoldPrice),
		Sqft:         Number(rec, MetricSqft),
		LotAcres:     LotAcres(rec),
		Beds:         Number(rec, MetricBeds),
		Baths:        Number(rec, MetricBaths),
		DaysOnMarket: Number(rec, MetricDaysOnMarket),

		Status: model.StatusUnknown,

		Coordinates: coordinates(rec),
		Photos:      photoURLs(rec),
		Remarks:     StripMarkup(firstString(rec, remarksPaths)),
	}
}

func coordinates(rec model.RawRecord) *model.Coordinates {
	lat := numberFrom(rec, fieldRule{paths: latPaths, valid: func(f float64) bool {
		return f >= -90 && f <= 90 && f != 0
	}})
	lng := numberFrom(rec, fieldRule{paths: lngPaths, valid: func(f float64) bool {
		return f >= -180 && f <= 180 && f != 0
	}})
	if lat == nil || lng == nil {
		return nil
	}
	return &model.Coordinates{Latitude: *lat, Longitude: *lng}
}

// photoURLs tolerates both plain string arrays and object arrays with a
// url/href member, the two shapes the provider has shipped.
func photoURLs(rec model.RawRecord) []string {
	for _, path := range photoPaths {
		raw, ok := rec.Lookup(path)
		if !ok {
			continue
		}
		arr, ok := raw.([]any)
		if !ok {
			continue
		}

		var urls []string
		for _, item := range arr {
			switch v := item.(type) {
			case string:
				if v != "" {
					urls = append(urls, v)
				}
			case map[string]any:
				for _, key := range []string{"url", "href", "mediaURL"} {
					if s, ok := v[key].(string); ok && s != "" {
						urls = append(urls, s)
						break
					}
				}
			}
		}
		if len(urls) > 0 {
			return urls
		}
	}
	return nil
}
