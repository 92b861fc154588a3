package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genset",
		Name:      "import_rows_total",
		Help:      "Spreadsheet rows processed by import, by result.",
	}, []string{"result"})

	exportFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genset",
		Name:      "export_files_total",
		Help:      "Workbooks produced by export, by kind.",
	}, []string{"kind"})

	historiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "genset",
		Name:      "histories_created_total",
		Help:      "History entries created through the API or import.",
	})
)
