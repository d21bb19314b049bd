package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderRequest struct {
	CustomerID int64  `json:"customer_id"`
	Items      []Item `json:"items"`
}

func generateRandomOrder() OrderRequest {
	items := make([]Item, 1+rand.Intn(4))
	for i := range items {
		productID := int64(1 + rand.Intn(50))
		items[i] = Item{
			ProductID: productID,
			SKU:       fmt.Sprintf("SKU-%04d", productID),
			Quantity:  1 + rand.Intn(5),
			// Цена в центах, чтобы не получать лишние знаки после запятой
			UnitPrice: decimal.New(int64(100+rand.Intn(9900)), -2),
		}
	}

	return OrderRequest{
		CustomerID: int64(1 + rand.Intn(20)),
		Items:      items,
	}
}

func main() {
	addr := kafka.TCP("localhost:9092")

	writer := &kafka.Writer{
		Addr:  addr,
		Topic: "order-requests",
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder()
			data, _ := json.Marshal(order)
			requestID := uuid.NewString()
			err := writer.WriteMessages(ctx, kafka.Message{
				Value:   data,
				Headers: []kafka.Header{{Key: "request_id", Value: []byte(requestID)}},
			})
			if err != nil {
				log.Println("failed to write order request", err)
				continue
			}
			log.Println("order request sent", requestID, "customer", order.CustomerID)
		case <-ctx.Done():
			return
		}
	}
}
