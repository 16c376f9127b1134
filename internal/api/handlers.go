// Package api реализует JSON HTTP интерфейс магазина поверх
// доменных сервисов: карточки клиентов и товаров, оформление
// заказов и отчёты.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
	"github.com/vladislavdragonenkov/shopcrm/internal/metrics"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/orders"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/reports"
)

// Handler объединяет HTTP обработчики магазина.
type Handler struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   *orders.Service
	reports  *reports.Engine
	events   domain.EventPublisher
	metrics  *metrics.ShopMetrics
	logger   *log.Entry
}

// NewHandler конструирует обработчики. events и shopMetrics могут быть
// nil — тогда события не публикуются, а метрики не записываются.
func NewHandler(
	clients domain.ClientRepository,
	products domain.ProductRepository,
	orderService *orders.Service,
	reportEngine *reports.Engine,
	events domain.EventPublisher,
	shopMetrics *metrics.ShopMetrics,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.WithField("component", "api")
	}
	return &Handler{
		clients:  clients,
		products: products,
		orders:   orderService,
		reports:  reportEngine,
		events:   events,
		metrics:  shopMetrics,
		logger:   logger,
	}
}

type createClientRequest struct {
	FIO     string `json:"fio"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type clientResponse struct {
	ID      int64  `json:"id"`
	FIO     string `json:"fio"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateClient сохраняет карточку клиента.
func (h *Handler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	client := domain.Client{
		FIO:     req.FIO,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := client.Validate(); err != nil {
		h.respondDomainError(c, err)
		return
	}

	id, err := h.clients.Create(client)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	h.logger.WithField("client_id", id).Info("клиент сохранён")
	if h.metrics != nil {
		h.metrics.RecordClientCreated()
	}
	if h.events != nil {
		if err := h.events.ClientCreated(id, client.FIO); err != nil {
			h.logger.WithError(err).WithField("client_id", id).Warn("не удалось опубликовать событие клиента")
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListClients возвращает всех клиентов в порядке создания.
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.clients.List()
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	response := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, clientResponse{
			ID:      client.ID,
			FIO:     client.FIO,
			Phone:   client.Phone,
			Email:   client.Email,
			Address: client.Address,
		})
	}
	c.JSON(http.StatusOK, gin.H{"clients": response})
}

type createProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

type productResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

// CreateProduct сохраняет карточку товара.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	product := domain.Product{
		Name:  req.Name,
		Price: req.Price,
		Unit:  req.Unit,
	}
	if err := product.Validate(); err != nil {
		h.respondDomainError(c, err)
		return
	}

	id, err := h.products.Create(product)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	h.logger.WithField("product_id", id).Info("товар сохранён")
	if h.metrics != nil {
		h.metrics.RecordProductCreated()
	}
	if h.events != nil {
		if err := h.events.ProductCreated(id, product.Name); err != nil {
			h.logger.WithError(err).WithField("product_id", id).Warn("не удалось опубликовать событие товара")
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListProducts возвращает каталог товаров в порядке создания.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List()
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	response := make([]productResponse, 0, len(products))
	for _, product := range products {
		response = append(response, productResponse{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
			Unit:  product.Unit,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": response})
}

type createOrderRequest struct {
	ClientID int64              `json:"client_id"`
	Items    []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrder оформляет заказ по идентификаторам клиента и товаров.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	start := time.Now()
	id, err := h.orders.Create(req.ClientID, items)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordOrderRejected()
		}
		h.respondDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderCreated()
		h.metrics.RecordOrderDuration(time.Since(start))
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type createOrderByNamesRequest struct {
	Client string                   `json:"client"`
	Items  []orderItemByNameRequest `json:"items"`
}

type orderItemByNameRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrderByNames оформляет заказ, разрешая клиента и товары по именам.
func (h *Handler) CreateOrderByNames(c *gin.Context) {
	var req createOrderByNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	items := make([]orders.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.ItemRequest{ProductName: item.Product, Quantity: item.Quantity})
	}

	start := time.Now()
	id, err := h.orders.CreateByNames(req.Client, items)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordOrderRejected()
		}
		h.respondDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderCreated()
		h.metrics.RecordOrderDuration(time.Since(start))
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListOrders возвращает отчёт по заказам. Параметр sort задаёт колонку
// (client, items, total), desc=true — обратный порядок.
func (h *Handler) ListOrders(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.RecordReportRequest("orders")
	}

	rows, err := h.reports.OrderTotals()
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	if sortParam := c.Query("sort"); sortParam != "" {
		descending := c.Query("desc") == "true"
		rows = reports.SortOrders(rows, reports.ParseColumn(sortParam), descending)
	}

	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

// TopClients возвращает клиентов с наибольшими суммарными тратами.
// Параметр n ограничивает размер выборки.
func (h *Handler) TopClients(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.RecordReportRequest("top_clients")
	}

	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, codeBadRequest, err)
			return
		}
		n = parsed
	}

	top, err := h.reports.TopClientsBySpend(n)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": top})
}

// ClientsByCity возвращает распределение клиентов по городам.
func (h *Handler) ClientsByCity(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.RecordReportRequest("cities")
	}

	cities, err := h.reports.ClientsByCity()
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}
