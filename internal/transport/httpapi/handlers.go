package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

type orderItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderRequest struct {
	CustomerID          int64              `json:"customer_id"`
	BranchID            int64              `json:"branch_id"`
	Status              string             `json:"status,omitempty"`
	EstimatedDeliveryAt *time.Time         `json:"estimated_delivery_at,omitempty"`
	ShippingAddress     string             `json:"shipping_address,omitempty"`
	PaymentMethod       string             `json:"payment_method,omitempty"`
	Items               []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type orderResponse struct {
	ID                  int64               `json:"id"`
	CustomerID          int64               `json:"customer_id"`
	BranchID            int64               `json:"branch_id"`
	Status              string              `json:"status"`
	PlacedAt            time.Time           `json:"placed_at"`
	EstimatedDeliveryAt *time.Time          `json:"estimated_delivery_at,omitempty"`
	ShippingAddress     string              `json:"shipping_address,omitempty"`
	PaymentMethod       string              `json:"payment_method,omitempty"`
	Total               float64             `json:"total"`
	Items               []orderItemResponse `json:"items"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	created, err := s.orders.Create(c.Request.Context(), toDomainOrder(req))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(created))
}

func (s *Server) updateOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	updated, err := s.orders.UpdateFull(c.Request.Context(), id, toDomainOrder(req))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	updated, err := s.orders.UpdateStatus(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	found, err := s.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(found))
}

func (s *Server) listOrdersByCustomer(c *gin.Context) {
	customerID, err := parseID(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	orders, err := s.orders.GetByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (s *Server) listOrdersByBranch(c *gin.Context) {
	branchID, err := parseID(c.Param("branchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch id"})
		return
	}

	orders, err := s.orders.GetByBranch(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := s.orders.DeleteByID(c.Request.Context(), id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func toDomainOrder(req orderRequest) domain.Order {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return domain.Order{
		CustomerID:          req.CustomerID,
		BranchID:            req.BranchID,
		Status:              domain.OrderStatus(req.Status),
		EstimatedDeliveryAt: req.EstimatedDeliveryAt,
		ShippingAddress:     req.ShippingAddress,
		PaymentMethod:       req.PaymentMethod,
		Items:               items,
	}
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return orderResponse{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		BranchID:            order.BranchID,
		Status:              string(order.Status),
		PlacedAt:            order.PlacedAt,
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		ShippingAddress:     order.ShippingAddress,
		PaymentMethod:       order.PaymentMethod,
		Total:               order.Total,
		Items:               items,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// mapErrorToStatus переводит доменные ошибки в HTTP-статусы: валидация — 400,
// отсутствующий заказ — 404, всё остальное — 500.
func mapErrorToStatus(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
