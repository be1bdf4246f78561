package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	billsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bills_saved_total",
		Help: "Bills written to the store, by invoice type and operation.",
	}, []string{"invoice_type", "op"})

	billExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bill_exports_total",
		Help: "PDF and spreadsheet exports, by format and outcome.",
	}, []string{"format", "outcome"})
)

// RecordExport counts an export attempt. err == nil counts as success.
func RecordExport(format string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	billExports.WithLabelValues(format, outcome).Inc()
}
