package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/pricing"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/utils"
	"github.com/shopspring/decimal"
)

const DefaultPageSize = 3

type HistoryRepo interface {
	// CustomerOrders returns every order of the customer with its items.
	CustomerOrders(ctx context.Context, customerID int64) ([]entities.Order, error)
}

// HistoryQuery holds the raw history parameters. Filter and sort values are
// matched case-insensitively, unknown values match nothing.
type HistoryQuery struct {
	CustomerID     int64
	Search         string
	StatusFilter   string
	PaymentFilter  string
	ShippingFilter string
	SortBy         string
	SortDir        string
	Page           int
}

type HistoryEntry struct {
	Order entities.Order
	// Total is recomputed from the current line items.
	Total    decimal.Decimal
	Shipment entities.Shipment
}

type HistoryPage struct {
	Entries    []HistoryEntry
	Page       int
	TotalPages int
	TotalCount int
	PageSize   int
	Query      HistoryQuery
}

type HistoryService struct {
	logger   *slog.Logger
	repo     HistoryRepo
	shipping ShippingGateway
	pageSize int
}

func NewHistoryService(logger *slog.Logger, repo HistoryRepo, shipping ShippingGateway, pageSize int) *HistoryService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &HistoryService{
		logger:   logger.With(slog.String("service", "history")),
		repo:     repo,
		shipping: shipping,
		pageSize: pageSize,
	}
}

func (s *HistoryService) OrderHistory(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	if q.CustomerID <= 0 {
		return HistoryPage{}, fmt.Errorf("%w: customer id must be positive", entities.ErrInvalidOrder)
	}

	var orders []entities.Order
	fn := func() error {
		var err error
		orders, err = s.repo.CustomerOrders(ctx, q.CustomerID)
		return err
	}
	if err := utils.Retry(ctx, readRetry, fn); err != nil {
		return HistoryPage{}, fmt.Errorf("failed to load customer orders: %w", err)
	}

	orders = slices.DeleteFunc(orders, func(o entities.Order) bool {
		return !matchesSearch(o, q.Search) || !matchesStatus(o, q.StatusFilter, q.PaymentFilter)
	})

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}
	var shipments map[int64]entities.Shipment
	if len(ids) > 0 {
		shipments = s.shipping.ShippingBatch(ctx, ids)
	}

	entries := make([]HistoryEntry, 0, len(orders))
	for _, o := range orders {
		sh, ok := shipments[o.OrderID]
		if !ok || sh.Status == "" {
			sh = entities.Shipment{OrderID: o.OrderID, Status: entities.ShippingStatusUnknown}
		}
		if q.ShippingFilter != "" && !strings.EqualFold(string(sh.Status), q.ShippingFilter) {
			continue
		}
		entries = append(entries, HistoryEntry{
			Order:    o,
			Total:    pricing.OrderTotal(o.Items),
			Shipment: sh,
		})
	}

	sortEntries(entries, q.SortBy, q.SortDir)

	page := paginate(len(entries), s.pageSize, q.Page)
	start := (page - 1) * s.pageSize
	end := min(start+s.pageSize, len(entries))

	s.logger.DebugContext(ctx, "history query",
		slog.Int64("customer_id", q.CustomerID),
		slog.Int("matched", len(entries)),
		slog.Int("page", page),
	)

	return HistoryPage{
		Entries:    entries[start:end],
		Page:       page,
		TotalPages: totalPages(len(entries), s.pageSize),
		TotalCount: len(entries),
		PageSize:   s.pageSize,
		Query:      q,
	}, nil
}

// matchesSearch checks every field of the order once, so an order with
// several matching items is still a single hit.
func matchesSearch(o entities.Order, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	fields := []string{
		strconv.FormatInt(o.OrderID, 10),
		string(o.OrderStatus),
		string(o.PaymentStatus),
	}
	for _, it := range o.Items {
		fields = append(fields, it.SKU)
	}
	return slices.ContainsFunc(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), term)
	})
}

func matchesStatus(o entities.Order, status, payment string) bool {
	if status != "" && !strings.EqualFold(string(o.OrderStatus), status) {
		return false
	}
	if payment != "" && !strings.EqualFold(string(o.PaymentStatus), payment) {
		return false
	}
	return true
}

// sortEntries orders by creation time or total. Without a recognised sort key
// the newest orders come first. Any direction other than descending sorts
// ascending.
func sortEntries(entries []HistoryEntry, sortBy, dir string) {
	byDate := func(a, b HistoryEntry) int { return a.Order.CreatedAt.Compare(b.Order.CreatedAt) }
	byTotal := func(a, b HistoryEntry) int { return a.Total.Cmp(b.Total) }

	var cmpFn func(a, b HistoryEntry) int
	desc := strings.EqualFold(dir, string(entities.DirectionDesc))
	switch {
	case strings.EqualFold(sortBy, string(entities.SortByDate)):
		cmpFn = byDate
	case strings.EqualFold(sortBy, string(entities.SortByTotal)):
		cmpFn = byTotal
	default:
		cmpFn, desc = byDate, true
	}

	slices.SortStableFunc(entries, func(a, b HistoryEntry) int {
		c := cmpFn(a, b)
		if c == 0 {
			c = cmp.Compare(a.Order.OrderID, b.Order.OrderID)
		}
		if desc {
			return -c
		}
		return c
	})
}

func totalPages(count, size int) int {
	if count == 0 {
		return 1
	}
	return (count + size - 1) / size
}

// paginate clamps page into [1, last page].
func paginate(count, size, page int) int {
	return max(1, min(page, totalPages(count, size)))
}

// HistoryVocabulary lists every value accepted by the history filters.
type HistoryVocabulary struct {
	OrderStatuses    []entities.OrderStatus
	PaymentStatuses  []entities.PaymentStatus
	ShippingStatuses []entities.ShippingStatus
	SortKeys         []entities.SortBy
	Directions       []entities.Direction
}

func Vocabulary() HistoryVocabulary {
	return HistoryVocabulary{
		OrderStatuses:    slices.Clone(entities.OrderStatuses),
		PaymentStatuses:  slices.Clone(entities.PaymentStatuses),
		ShippingStatuses: slices.Clone(entities.ShippingStatuses),
		SortKeys:         slices.Clone(entities.SortKeys),
		Directions:       slices.Clone(entities.Directions),
	}
}

// ExpectedDeliveryLabel formats an expected delivery date for display.
func ExpectedDeliveryLabel(sh entities.Shipment) string {
	if !sh.HasExpectedDelivery() {
		return ""
	}
	return sh.ExpectedDelivery.UTC().Format(time.DateOnly)
}
