package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	downloadCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fremantleline_http_download_count",
		Help: "Number of pages fetched successfully",
	})
	errorCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fremantleline_http_error_count",
		Help: "Number of page fetches that failed, including each retried attempt",
	})
	downloadDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "fremantleline_http_download_seconds",
		Help: "Time taken to fetch a page",
	})
)

func init() {
	prometheus.MustRegister(downloadCount, errorCount, downloadDuration)
}
