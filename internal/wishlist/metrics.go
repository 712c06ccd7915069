package wishlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storageFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_wishlist_storage_failures_total",
		Help: "Wishlist storage reads and writes that failed or were skipped",
	},
	[]string{"op"},
)
