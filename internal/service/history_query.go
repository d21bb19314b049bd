package service

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// History query parameter names.
const (
	ParamSearch         = "search"
	ParamStatusFilter   = "status_filter"
	ParamPaymentFilter  = "payment_filter"
	ParamShippingFilter = "shipping_filter"
	ParamSortBy         = "sort_by"
	ParamSortDir        = "sort_dir"
	ParamPage           = "page"
)

var historyParams = []string{
	ParamSearch,
	ParamStatusFilter,
	ParamPaymentFilter,
	ParamShippingFilter,
	ParamSortBy,
	ParamSortDir,
	ParamPage,
}

// NormalizeHistoryQuery returns the canonical form of a raw history query:
// known keys only, last value wins, values trimmed, empty values dropped,
// keys sorted. redirect is true when the canonical form differs from raw.
// Normalizing a canonical query is a no-op.
func NormalizeHistoryQuery(raw string) (canonical string, redirect bool) {
	values, err := url.ParseQuery(raw)
	if err != nil && len(values) == 0 {
		return "", raw != ""
	}
	canonical = canonicalValues(values).Encode()
	return canonical, canonical != raw
}

func canonicalValues(values url.Values) url.Values {
	out := url.Values{}
	for _, key := range historyParams {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		if v := strings.TrimSpace(vs[len(vs)-1]); v != "" {
			out.Set(key, v)
		}
	}
	return out
}

// QueryWithoutPage is the canonical query minus the page parameter, used to
// build pagination links.
func QueryWithoutPage(canonical string) string {
	values, _ := url.ParseQuery(canonical)
	values.Del(ParamPage)
	return values.Encode()
}

// ParseHistoryQuery reads a canonical query into a HistoryQuery. A missing or
// malformed page is page 1, a page too large for int is math.MaxInt and
// ends up clamped to the last page.
func ParseHistoryQuery(customerID int64, canonical string) HistoryQuery {
	values, _ := url.ParseQuery(canonical)
	return HistoryQuery{
		CustomerID:     customerID,
		Search:         values.Get(ParamSearch),
		StatusFilter:   values.Get(ParamStatusFilter),
		PaymentFilter:  values.Get(ParamPaymentFilter),
		ShippingFilter: values.Get(ParamShippingFilter),
		SortBy:         values.Get(ParamSortBy),
		SortDir:        values.Get(ParamSortDir),
		Page:           parsePage(values.Get(ParamPage)),
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return page
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		return math.MaxInt
	default:
		return 1
	}
}
