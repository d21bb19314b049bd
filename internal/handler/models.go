package handler

import (
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/pricing"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	"github.com/shopspring/decimal"
)

// Item позиция заказа
type Item struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	SKU       string          `json:"sku" validate:"required,max=64"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"19.99"`
}

// CreateOrderRequest запрос на создание заказа
type CreateOrderRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	Items      []Item `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest частичное обновление статусов, значения без учета регистра
type UpdateStatusRequest struct {
	OrderStatus    *string `json:"order_status,omitempty"`
	PaymentStatus  *string `json:"payment_status,omitempty"`
	ShippingStatus *string `json:"shipping_status,omitempty"`
}

// Order представляет заказ
type Order struct {
	OrderID            int64           `json:"order_id"`
	CustomerID         int64           `json:"customer_id"`
	OrderStatus        string          `json:"order_status"`
	PaymentStatus      string          `json:"payment_status"`
	Total              decimal.Decimal `json:"total" swaggertype:"string"`
	CreatedAt          time.Time       `json:"created_at"`
	Items              []Item          `json:"items"`
	AllowedTransitions []string        `json:"allowed_transitions"`
}

// OrderDetail заказ вместе с итогом, пересчитанным по текущим позициям
type OrderDetail struct {
	Order
	ComputedTotal decimal.Decimal `json:"computed_total" swaggertype:"string"`
}

// WorkflowFailure ответ при неудачном сценарии, заказ уже сохранен как отмененный
type WorkflowFailure struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// HistoryOrder строка истории заказов
type HistoryOrder struct {
	OrderID          int64           `json:"order_id"`
	OrderStatus      string          `json:"order_status"`
	PaymentStatus    string          `json:"payment_status"`
	Total            decimal.Decimal `json:"total" swaggertype:"string"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []Item          `json:"items"`
	ShippingStatus   string          `json:"shipping_status"`
	ExpectedDelivery string          `json:"expected_delivery,omitempty"`
}

// HistoryFilters примененные фильтры
type HistoryFilters struct {
	Search         string `json:"search,omitempty"`
	StatusFilter   string `json:"status_filter,omitempty"`
	PaymentFilter  string `json:"payment_filter,omitempty"`
	ShippingFilter string `json:"shipping_filter,omitempty"`
	SortBy         string `json:"sort_by,omitempty"`
	SortDir        string `json:"sort_dir,omitempty"`
}

// HistoryOptions допустимые значения фильтров и сортировки
type HistoryOptions struct {
	OrderStatuses    []string `json:"order_statuses"`
	PaymentStatuses  []string `json:"payment_statuses"`
	ShippingStatuses []string `json:"shipping_statuses"`
	SortKeys         []string `json:"sort_keys"`
	Directions       []string `json:"directions"`
}

// HistoryResponse страница истории заказов клиента
type HistoryResponse struct {
	CustomerID       int64          `json:"customer_id"`
	Orders           []HistoryOrder `json:"orders"`
	Page             int            `json:"page"`
	TotalPages       int            `json:"total_pages"`
	TotalCount       int            `json:"total_count"`
	PageSize         int            `json:"page_size"`
	Filters          HistoryFilters `json:"filters"`
	QueryWithoutPage string         `json:"query_without_page"`
	Options          HistoryOptions `json:"options"`
}

func ItemJSONToEntity(i Item) entities.Item {
	return entities.Item{
		ProductID: i.ProductID,
		SKU:       i.SKU,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func ItemEntityToJSON(i entities.Item) Item {
	return Item{
		ProductID: i.ProductID,
		SKU:       i.SKU,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func itemsToJSON(items []entities.Item) []Item {
	res := make([]Item, 0, len(items))
	for _, it := range items {
		res = append(res, ItemEntityToJSON(it))
	}
	return res
}

func CreateOrderJSONToEntity(req CreateOrderRequest) entities.NewOrder {
	items := make([]entities.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ItemJSONToEntity(it))
	}
	return entities.NewOrder{CustomerID: req.CustomerID, Items: items}
}

func OrderEntityToJSON(o entities.Order) Order {
	allowed := service.AllowedTransitions(o.OrderStatus)
	transitions := make([]string, 0, len(allowed))
	for _, s := range allowed {
		transitions = append(transitions, string(s))
	}

	return Order{
		OrderID:            o.OrderID,
		CustomerID:         o.CustomerID,
		OrderStatus:        string(o.OrderStatus),
		PaymentStatus:      string(o.PaymentStatus),
		Total:              o.Total,
		CreatedAt:          o.CreatedAt,
		Items:              itemsToJSON(o.Items),
		AllowedTransitions: transitions,
	}
}

func OrderDetailToJSON(o entities.Order) OrderDetail {
	return OrderDetail{
		Order:         OrderEntityToJSON(o),
		ComputedTotal: pricing.OrderTotal(o.Items),
	}
}

func HistoryPageToJSON(p service.HistoryPage, queryWithoutPage string) HistoryResponse {
	orders := make([]HistoryOrder, 0, len(p.Entries))
	for _, e := range p.Entries {
		orders = append(orders, HistoryOrder{
			OrderID:          e.Order.OrderID,
			OrderStatus:      string(e.Order.OrderStatus),
			PaymentStatus:    string(e.Order.PaymentStatus),
			Total:            e.Total,
			CreatedAt:        e.Order.CreatedAt,
			Items:            itemsToJSON(e.Order.Items),
			ShippingStatus:   string(e.Shipment.Status),
			ExpectedDelivery: service.ExpectedDeliveryLabel(e.Shipment),
		})
	}

	return HistoryResponse{
		CustomerID: p.Query.CustomerID,
		Orders:     orders,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		TotalCount: p.TotalCount,
		PageSize:   p.PageSize,
		Filters: HistoryFilters{
			Search:         p.Query.Search,
			StatusFilter:   p.Query.StatusFilter,
			PaymentFilter:  p.Query.PaymentFilter,
			ShippingFilter: p.Query.ShippingFilter,
			SortBy:         p.Query.SortBy,
			SortDir:        p.Query.SortDir,
		},
		QueryWithoutPage: queryWithoutPage,
		Options:          historyOptions(),
	}
}

func historyOptions() HistoryOptions {
	v := service.Vocabulary()
	return HistoryOptions{
		OrderStatuses:    toStrings(v.OrderStatuses),
		PaymentStatuses:  toStrings(v.PaymentStatuses),
		ShippingStatuses: toStrings(v.ShippingStatuses),
		SortKeys:         toStrings(v.SortKeys),
		Directions:       toStrings(v.Directions),
	}
}

func toStrings[S ~string](values []S) []string {
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = string(v)
	}
	return res
}
