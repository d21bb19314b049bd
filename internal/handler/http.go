package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (entities.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, upd entities.StatusUpdate) (entities.Order, error)
	GetOrder(ctx context.Context, orderID int64) (entities.Order, error)
}

type HistoryService interface {
	OrderHistory(ctx context.Context, q service.HistoryQuery) (service.HistoryPage, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	orders   OrderService
	history  HistoryService
}

func NewHTTPHandler(logger *slog.Logger, orders OrderService, history HistoryService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		orders:   orders,
		history:  history,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/orders", h.CreateOrder)
		r.Get("/orders/{order_id}", h.GetOrder)
		r.Post("/orders/{order_id}/cancel", h.CancelOrder)
		r.Patch("/orders/{order_id}/status", h.UpdateStatus)
		r.Get("/customers/{customer_id}/orders", h.OrderHistory)
	})
}

// CreateOrder создает заказ и проводит его через резервирование и оплату.
// @Summary      Создать заказ
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  Order
// @Failure      400  {object}  WorkflowFailure "Резервирование или оплата не прошли, заказ отменен"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /v1/orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, CreateOrderJSONToEntity(req))
	if err != nil {
		h.writeServiceError(ctx, w, err, order)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         orders
// @Produce      json
// @Param        order_id  path      int  true  "ID заказа"
// @Success      200  {object}  OrderDetail
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /v1/orders/{order_id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r, "order_id")
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, entities.Order{})
		return
	}

	utils.WriteJSON(w, OrderDetailToJSON(order), http.StatusOK)
}

// CancelOrder отменяет заказ и освобождает резерв.
// @Summary      Отменить заказ
// @Tags         orders
// @Produce      json
// @Param        order_id  path      int  true  "ID заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ уже завершен"
// @Router       /v1/orders/{order_id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r, "order_id")
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CancelOrder(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, entities.Order{})
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateStatus меняет статус заказа, оплаты и доставки.
// @Summary      Обновить статусы заказа
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order_id  path      int                  true  "ID заказа"
// @Param        request   body      UpdateStatusRequest  true  "Новые статусы"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Router       /v1/orders/{order_id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r, "order_id")
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	upd, fields := parseStatusUpdate(req)
	if len(fields) > 0 {
		utils.WriteJSON(w, utils.ValidationErrorResponse{Message: "invalid request", Fields: fields}, http.StatusBadRequest)
		return
	}

	order, err := h.orders.UpdateStatus(ctx, orderID, upd)
	if err != nil {
		h.writeServiceError(ctx, w, err, entities.Order{})
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// OrderHistory возвращает историю заказов клиента.
// Неканонический запрос перенаправляется на канонический.
// @Summary      История заказов клиента
// @Tags         orders
// @Produce      json
// @Param        customer_id      path   int     true   "ID клиента"
// @Param        search           query  string  false  "Поиск по ID, статусам и SKU"
// @Param        status_filter    query  string  false  "Статус заказа"
// @Param        payment_filter   query  string  false  "Статус оплаты"
// @Param        shipping_filter  query  string  false  "Статус доставки"
// @Param        sort_by          query  string  false  "Date или Total"
// @Param        sort_dir         query  string  false  "Ascending или Descending"
// @Param        page             query  int     false  "Страница"
// @Success      200  {object}  HistoryResponse
// @Success      302  "Редирект на канонический запрос"
// @Router       /v1/customers/{customer_id}/orders [get]
func (h *HTTPHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID, err := pathID(r, "customer_id")
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	canonical, redirect := service.NormalizeHistoryQuery(r.URL.RawQuery)
	if redirect {
		u := *r.URL
		u.RawQuery = canonical
		http.Redirect(w, r, u.String(), http.StatusFound)
		return
	}

	page, err := h.history.OrderHistory(ctx, service.ParseHistoryQuery(customerID, canonical))
	if err != nil {
		h.writeServiceError(ctx, w, err, entities.Order{})
		return
	}

	utils.WriteJSON(w, HistoryPageToJSON(page, service.QueryWithoutPage(canonical)), http.StatusOK)
}

// writeServiceError maps service errors to responses. A failed create that
// left a persisted order returns that order with the message.
func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, order entities.Order) {
	switch {
	case errors.Is(err, entities.ErrInventoryReservation), errors.Is(err, entities.ErrPaymentCharge):
		utils.WriteJSON(w, WorkflowFailure{Message: err.Error(), Order: OrderEntityToJSON(order)}, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteValidationError(w, err)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrOrderFinalized),
		errors.Is(err, entities.ErrPaymentRuleViolation),
		errors.Is(err, entities.ErrStatusConflict):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.Any("error", err), slog.Int64("order_id", order.OrderID))
		if order.OrderID != 0 {
			utils.WriteJSON(w, WorkflowFailure{Message: "internal server error", Order: OrderEntityToJSON(order)}, http.StatusInternalServerError)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// parseStatusUpdate matches status names case-insensitively and reports
// unknown values per field.
func parseStatusUpdate(req UpdateStatusRequest) (entities.StatusUpdate, map[string]string) {
	var upd entities.StatusUpdate
	fields := make(map[string]string)

	if req.OrderStatus != nil {
		if s, ok := entities.ParseOrderStatus(*req.OrderStatus); ok {
			upd.OrderStatus = &s
		} else {
			fields["order_status"] = "oneof"
		}
	}
	if req.PaymentStatus != nil {
		if s, ok := entities.ParsePaymentStatus(*req.PaymentStatus); ok {
			upd.PaymentStatus = &s
		} else {
			fields["payment_status"] = "oneof"
		}
	}
	if req.ShippingStatus != nil {
		if s, ok := entities.ParseShippingStatus(*req.ShippingStatus); ok {
			upd.ShippingStatus = &s
		} else {
			fields["shipping_status"] = "oneof"
		}
	}
	if upd.Empty() && len(fields) == 0 {
		fields["status"] = "required"
	}

	return upd, fields
}
