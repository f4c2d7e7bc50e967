package app

import (
	"net/url"
	"strconv"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

const (
	defaultPage = 1
	defaultSize = 20
	maxSize     = 20
)

// ParseListQuery validates the listing query params and folds them into a
// SpotFilter. Every offending field gets its own reason; the error message
// for query-param validation is "Bad Request".
func ParseListQuery(q url.Values) (domain.SpotFilter, error) {
	f := domain.SpotFilter{Page: defaultPage, Size: defaultSize}
	errs := map[string]string{}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs["page"] = "Page must be greater than or equal to 1"
		} else {
			f.Page = n
		}
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSize {
			errs["size"] = "Size must be between 1 and 20"
		} else {
			f.Size = n
		}
	}

	f.MinLat = parseBound(q, "minLat", -90, 90, "Minimum latitude is invalid", errs)
	f.MaxLat = parseBound(q, "maxLat", -90, 90, "Maximum latitude is invalid", errs)
	f.MinLng = parseBound(q, "minLng", -180, 180, "Minimum longitude is invalid", errs)
	f.MaxLng = parseBound(q, "maxLng", -180, 180, "Maximum longitude is invalid", errs)
	f.MinPrice = parseMin(q, "minPrice", "Minimum price must be greater than or equal to 0", errs)
	f.MaxPrice = parseMin(q, "maxPrice", "Maximum price must be greater than or equal to 0", errs)

	if len(errs) > 0 {
		return domain.SpotFilter{}, domain.NewBadRequest(errs)
	}
	return f, nil
}

func parseBound(q url.Values, key string, lo, hi float64, reason string, errs map[string]string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < lo || n > hi {
		errs[key] = reason
		return nil
	}
	return &n
}

func parseMin(q url.Values, key, reason string, errs map[string]string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		errs[key] = reason
		return nil
	}
	return &n
}
