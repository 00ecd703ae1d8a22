package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Created = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nippo_created_total",
			Help: "Rows created by user actions",
		},
		[]string{"kind"}, // report|comment|reaction|plan|image
	)

	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nippo_exports_total",
			Help: "Spreadsheet and CSV exports",
		},
		[]string{"kind", "format"},
	)

	Backups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nippo_backups_total",
			Help: "Backup runs by result",
		},
		[]string{"result"},
	)

	ReadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nippo_read_failures_total",
			Help: "Reads that failed and were served as empty results",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(Created, Exports, Backups, ReadFailures)
}
