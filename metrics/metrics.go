// Package metrics exposes storefront counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	CartMutations    *prometheus.CounterVec // by op: add, set_quantity, remove, clear
	PromoAttempts    *prometheus.CounterVec // by result: applied, invalid, minimum_not_met, empty
	OrdersPlaced     prometheus.Counter
	OrderRevenue     prometheus.Counter
	CheckoutFailures *prometheus.CounterVec // by reason
	CheckoutLatency  prometheus.Histogram
	EventFailures    prometheus.Counter
	LoginAttempts    *prometheus.CounterVec // by result: success, invalid, throttled
	CatalogQueries   prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_cart_mutations_total"}, []string{"op"})
	promoAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_promo_attempts_total"}, []string{"result"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_placed_total"})
	orderRevenue := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_order_revenue_total"})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_checkout_failures_total"}, []string{"reason"})
	checkoutLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_checkout_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	eventFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_order_event_failures_total"})
	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_login_attempts_total"}, []string{"result"})
	catalogQueries := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_catalog_queries_total"})

	r.MustRegister(cartMutations, promoAttempts, ordersPlaced, orderRevenue, checkoutFailures,
		checkoutLatency, eventFailures, loginAttempts, catalogQueries)
	return &Registry{
		reg:              r,
		CartMutations:    cartMutations,
		PromoAttempts:    promoAttempts,
		OrdersPlaced:     ordersPlaced,
		OrderRevenue:     orderRevenue,
		CheckoutFailures: checkoutFailures,
		CheckoutLatency:  checkoutLatency,
		EventFailures:    eventFailures,
		LoginAttempts:    loginAttempts,
		CatalogQueries:   catalogQueries,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
