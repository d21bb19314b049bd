package repo

import (
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID       int64           `db:"order_id"`
	CustomerID    int64           `db:"customer_id"`
	OrderStatus   string          `db:"order_status"`
	PaymentStatus string          `db:"payment_status"`
	OrderTotal    decimal.Decimal `db:"order_total"`
	CreatedAt     time.Time       `db:"created_at"`
}

type Item struct {
	OrderItemID int64           `db:"order_item_id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	SKU         string          `db:"sku"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

var (
	orderColumns = []string{"order_id", "customer_id", "order_status", "payment_status", "order_total", "created_at"}
	itemColumns  = []string{"order_item_id", "order_id", "product_id", "sku", "quantity", "unit_price"}
)

func ItemToEntity(i Item) entities.Item {
	return entities.Item{
		ProductID: i.ProductID,
		SKU:       i.SKU,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

func OrderToEntity(o Order, items []Item) entities.Order {
	order := entities.Order{
		OrderID:       o.OrderID,
		CustomerID:    o.CustomerID,
		OrderStatus:   entities.OrderStatus(o.OrderStatus),
		PaymentStatus: entities.PaymentStatus(o.PaymentStatus),
		Total:         o.OrderTotal,
		CreatedAt:     o.CreatedAt,
	}

	if len(items) > 0 {
		order.Items = make([]entities.Item, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}
