package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит все коллекторы сервиса. Регистрируются в
// prometheus.DefaultRegisterer, отдаются через promhttp.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolState     *prometheus.GaugeVec

	appointmentsPlacedTotal *prometheus.CounterVec
	appointmentsMovedTotal  *prometheus.CounterVec
	slotConflictsTotal      *prometheus.CounterVec
	stockRejectionsTotal    *prometheus.CounterVec
	lowStockProducts        *prometheus.GaugeVec
}

// New создает и регистрирует коллекторы для сервиса serviceName.
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		httpRequestsInFlight: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}, []string{"service"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbPoolState: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		appointmentsPlacedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_placed_total",
			Help: "Total number of appointments placed on the board",
		}, []string{"service"}),

		appointmentsMovedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_moved_total",
			Help: "Total number of appointments moved to another slot",
		}, []string{"service"}),

		slotConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_conflicts_total",
			Help: "Total number of placements rejected due to slot conflicts",
		}, []string{"service"}),

		stockRejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_rejections_total",
			Help: "Total number of placements rejected due to insufficient stock",
		}, []string{"service"}),

		lowStockProducts: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "low_stock_products",
			Help: "Number of products at or below their low stock threshold",
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// HTTPRequestStarted увеличивает счетчик запросов в обработке.
func (m *Metrics) HTTPRequestStarted() {
	m.httpRequestsInFlight.WithLabelValues(m.serviceName).Inc()
}

// HTTPRequestFinished уменьшает счетчик запросов в обработке.
func (m *Metrics) HTTPRequestFinished() {
	m.httpRequestsInFlight.WithLabelValues(m.serviceName).Dec()
}

// ObserveDBQuery фиксирует выполненный запрос к базе.
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.dbQueriesTotal.WithLabelValues(m.serviceName, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
}

// SetDBPoolStats обновляет гейджи состояния пула соединений.
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbPoolState.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbPoolState.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbPoolState.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// IncAppointmentPlaced увеличивает счетчик успешных размещений.
func (m *Metrics) IncAppointmentPlaced() {
	m.appointmentsPlacedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncAppointmentMoved увеличивает счетчик успешных переносов.
func (m *Metrics) IncAppointmentMoved() {
	m.appointmentsMovedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncSlotConflict увеличивает счетчик отказов из-за занятого слота.
func (m *Metrics) IncSlotConflict() {
	m.slotConflictsTotal.WithLabelValues(m.serviceName).Inc()
}

// IncStockRejection увеличивает счетчик отказов из-за нехватки товара.
func (m *Metrics) IncStockRejection() {
	m.stockRejectionsTotal.WithLabelValues(m.serviceName).Inc()
}

// SetLowStockProducts обновляет количество товаров на исходе.
func (m *Metrics) SetLowStockProducts(n int) {
	m.lowStockProducts.WithLabelValues(m.serviceName).Set(float64(n))
}
