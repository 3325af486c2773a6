package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos/internal/service/order"
)

// Server — REST-фасад над сервисом заказов.
type Server struct {
	engine *gin.Engine
	orders *order.Service
	logger *log.Entry
}

// NewServer конструирует HTTP-сервер с маршрутами API заказов.
func NewServer(orders *order.Service, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestIDMiddleware(), loggingMiddleware(logger), gin.Recovery())

	s := &Server{engine: engine, orders: orders, logger: logger}
	s.registerRoutes()
	return s
}

// Engine возвращает gin engine для подключения к http.Server и тестов.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id", s.updateOrder)
		orders.PUT(":id/status", s.updateOrderStatus)
		orders.DELETE(":id", s.deleteOrder)

		// Выборки по клиенту и филиалу вынесены в отдельные ресурсы:
		// gin не допускает статический сегмент рядом с параметром :id.
		v1.GET("/customers/:customerId/orders", s.listOrdersByCustomer)
		v1.GET("/branches/:branchId/orders", s.listOrdersByBranch)
	}
}

// requestIDMiddleware проставляет X-Request-ID для сквозной трассировки логов.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

func loggingMiddleware(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString("request_id"),
		}).Info("http request")
	}
}
