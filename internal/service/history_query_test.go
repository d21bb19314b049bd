package service_test

import (
	"math"
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeHistoryQuery(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		want         string
		wantRedirect bool
	}{
		{name: "empty", raw: "", want: "", wantRedirect: false},
		{name: "already canonical", raw: "page=2&search=abc", want: "page=2&search=abc", wantRedirect: false},
		{name: "empty values dropped", raw: "search=&status_filter=PENDING&page=", want: "status_filter=PENDING", wantRedirect: true},
		{name: "only empty values", raw: "search=&page=", want: "", wantRedirect: true},
		{name: "keys sorted", raw: "search=abc&page=2", want: "page=2&search=abc", wantRedirect: true},
		{name: "unknown keys dropped", raw: "utm=x&sort_by=Total", want: "sort_by=Total", wantRedirect: true},
		{name: "last value wins", raw: "page=1&page=3", want: "page=3", wantRedirect: true},
		{name: "values trimmed", raw: "search=+abc+", want: "search=abc", wantRedirect: true},
		{name: "spaces keep their encoding", raw: "search=a+b", want: "search=a+b", wantRedirect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, redirect := service.NormalizeHistoryQuery(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantRedirect, redirect)

			again, redirect := service.NormalizeHistoryQuery(got)
			assert.Equal(t, got, again)
			assert.False(t, redirect, "canonical query must not redirect")
		})
	}
}

func TestQueryWithoutPage(t *testing.T) {
	assert.Equal(t, "search=abc&sort_by=Date", service.QueryWithoutPage("page=2&search=abc&sort_by=Date"))
	assert.Equal(t, "", service.QueryWithoutPage("page=2"))
}

func TestParseHistoryQuery(t *testing.T) {
	got := service.ParseHistoryQuery(customerID, "page=2&payment_filter=PAID&search=abc&shipping_filter=Shipped&sort_by=Total&sort_dir=Descending&status_filter=CONFIRMED")
	assert.Equal(t, service.HistoryQuery{
		CustomerID:     customerID,
		Search:         "abc",
		StatusFilter:   "CONFIRMED",
		PaymentFilter:  "PAID",
		ShippingFilter: "Shipped",
		SortBy:         "Total",
		SortDir:        "Descending",
		Page:           2,
	}, got)

	assert.Equal(t, 1, service.ParseHistoryQuery(customerID, "page=abc").Page)
	assert.Equal(t, 1, service.ParseHistoryQuery(customerID, "").Page)
	assert.Equal(t, math.MaxInt, service.ParseHistoryQuery(customerID, "page=99999999999999999999999").Page)
	assert.Equal(t, 1, service.ParseHistoryQuery(customerID, "page=-99999999999999999999999").Page)
}
