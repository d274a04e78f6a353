// Package metrics expone contadores de negocio y de HTTP en formato Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics sobre un registry propio.
type Prometheus struct {
	registry *prometheus.Registry

	stockAdjustments   *prometheus.CounterVec
	stockConflicts     *prometheus.CounterVec
	salesOrders        *prometheus.CounterVec
	purchaseReceipts   *prometheus.CounterVec
	autoReorderOrders  prometheus.Counter
	notificationErrors prometheus.Counter
	publishErrors      *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registra todas las métricas en un registry nuevo (más los collectors de Go y proceso).
func New(namespace string) *Prometheus {
	reg := prometheus.NewRegistry()
	m := &Prometheus{
		registry: reg,
		stockAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Ajustes de stock aplicados por tipo",
		}, []string{"type"}),
		stockConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_conflicts_total",
			Help:      "Operaciones rechazadas por stock insuficiente",
		}, []string{"operation"}),
		salesOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_orders_total",
			Help:      "Órdenes de venta creadas o canceladas",
		}, []string{"event"}),
		purchaseReceipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_receipts_total",
			Help:      "Recepciones de mercancía por estado resultante de la orden",
		}, []string{"status"}),
		autoReorderOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_reorder_purchase_orders_total",
			Help:      "Órdenes de compra generadas por el reorden automático",
		}),
		notificationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notificaciones que no se pudieron persistir",
		}),
		publishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Eventos de dominio que no se pudieron publicar",
		}, []string{"event_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.stockAdjustments, m.stockConflicts, m.salesOrders, m.purchaseReceipts,
		m.autoReorderOrders, m.notificationErrors, m.publishErrors,
		m.httpRequests, m.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry para montar el handler /metrics.
func (m *Prometheus) Registry() *prometheus.Registry { return m.registry }

func (m *Prometheus) StockAdjusted(adjType string)  { m.stockAdjustments.WithLabelValues(adjType).Inc() }
func (m *Prometheus) StockConflict(operation string) { m.stockConflicts.WithLabelValues(operation).Inc() }
func (m *Prometheus) SalesOrderCreated()             { m.salesOrders.WithLabelValues("created").Inc() }
func (m *Prometheus) SalesOrderCancelled()           { m.salesOrders.WithLabelValues("cancelled").Inc() }
func (m *Prometheus) NotificationFailed()            { m.notificationErrors.Inc() }

func (m *Prometheus) PurchaseOrderReceived(status string) {
	m.purchaseReceipts.WithLabelValues(status).Inc()
}

func (m *Prometheus) AutoReorderOrders(n int) {
	if n > 0 {
		m.autoReorderOrders.Add(float64(n))
	}
}

func (m *Prometheus) EventPublishFailed(eventType string) {
	m.publishErrors.WithLabelValues(eventType).Inc()
}

// Middleware mide cada petición. Usa la ruta registrada (no el path) para acotar la cardinalidad.
func (m *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
