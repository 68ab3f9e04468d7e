package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moodjournal"

var (
	// EntriesSaved counts entry saves by outcome: created or updated
	EntriesSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_saved_total",
		Help:      "Journal entries saved, by outcome.",
	}, []string{"outcome"})

	// EntriesDeleted counts entries removed by date
	EntriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_deleted_total",
		Help:      "Journal entries deleted.",
	})

	// PinVerifications counts PIN checks by result: ok or failed
	PinVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pin_verifications_total",
		Help:      "PIN verification attempts, by result.",
	}, []string{"result"})

	// PDFExports counts rendered PDF exports
	PDFExports = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pdf_exports_total",
		Help:      "PDF exports rendered.",
	})
)
