package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the validation service.
type Metrics struct {
	ValidationsTotal   *prometheus.CounterVec
	ParseFailures      prometheus.Counter
	OcrRequests        prometheus.Counter
	AttestationsIssued prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_validations_total",
			Help: "Number of passport validations, partitioned by outcome status.",
		}, []string{"status"}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mrz_parse_failures_total",
			Help: "Number of MRZ texts rejected before field extraction.",
		}),
		OcrRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocr_requests_total",
			Help: "Number of image payloads sent to the remote OCR service.",
		}),
		AttestationsIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "attestations_issued_total",
			Help: "Number of signed validation attestations issued.",
		}),
	}
}
