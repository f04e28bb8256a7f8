package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swoga/netgear-exporter/model"
)

func AddMetricsTraffic(registry prometheus.Registerer, statistics model.TrafficMeterStatistics) error {
	registry = prometheus.WrapRegistererWithPrefix("traffic_", registry)

	// connection time
	connectionTimeGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "connection_time_minutes",
	}, []string{"period"})
	registry.MustRegister(connectionTimeGaugeVec)

	connectionTimeGaugeVec.WithLabelValues("today").Set(float64(statistics.TodayConnectionTime))
	connectionTimeGaugeVec.WithLabelValues("yesterday").Set(float64(statistics.YesterdayConnectionTime))
	connectionTimeGaugeVec.WithLabelValues("week").Set(float64(statistics.WeekConnectionTime))
	connectionTimeGaugeVec.WithLabelValues("month").Set(float64(statistics.MonthConnectionTime))
	connectionTimeGaugeVec.WithLabelValues("last_month").Set(float64(statistics.LastMonthConnectionTime))

	// daily transfer
	uploadGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "upload_mbytes",
	}, []string{"period"})
	registry.MustRegister(uploadGaugeVec)
	downloadGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "download_mbytes",
	}, []string{"period"})
	registry.MustRegister(downloadGaugeVec)

	uploadGaugeVec.WithLabelValues("today").Set(statistics.TodayUpload)
	uploadGaugeVec.WithLabelValues("yesterday").Set(statistics.YesterdayUpload)
	downloadGaugeVec.WithLabelValues("today").Set(statistics.TodayDownload)
	downloadGaugeVec.WithLabelValues("yesterday").Set(statistics.YesterdayDownload)

	// aggregated transfer, total plus daily average
	uploadTotalGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "upload_total_mbytes",
	}, []string{"period"})
	registry.MustRegister(uploadTotalGaugeVec)
	uploadAverageGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "upload_average_mbytes",
	}, []string{"period"})
	registry.MustRegister(uploadAverageGaugeVec)
	downloadTotalGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "download_total_mbytes",
	}, []string{"period"})
	registry.MustRegister(downloadTotalGaugeVec)
	downloadAverageGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "download_average_mbytes",
	}, []string{"period"})
	registry.MustRegister(downloadAverageGaugeVec)

	uploadTotalGaugeVec.WithLabelValues("week").Set(statistics.WeekUpload.Total)
	uploadAverageGaugeVec.WithLabelValues("week").Set(statistics.WeekUpload.Average)
	downloadTotalGaugeVec.WithLabelValues("week").Set(statistics.WeekDownload.Total)
	downloadAverageGaugeVec.WithLabelValues("week").Set(statistics.WeekDownload.Average)
	uploadTotalGaugeVec.WithLabelValues("month").Set(statistics.MonthUpload.Total)
	uploadAverageGaugeVec.WithLabelValues("month").Set(statistics.MonthUpload.Average)
	downloadTotalGaugeVec.WithLabelValues("month").Set(statistics.MonthDownload.Total)
	downloadAverageGaugeVec.WithLabelValues("month").Set(statistics.MonthDownload.Average)
	uploadTotalGaugeVec.WithLabelValues("last_month").Set(statistics.LastMonthUpload.Total)
	uploadAverageGaugeVec.WithLabelValues("last_month").Set(statistics.LastMonthUpload.Average)
	downloadTotalGaugeVec.WithLabelValues("last_month").Set(statistics.LastMonthDownload.Total)
	downloadAverageGaugeVec.WithLabelValues("last_month").Set(statistics.LastMonthDownload.Average)

	return nil
}

func AddMetricsSystem(registry prometheus.Registerer, info model.SystemInfo) error {
	registry = prometheus.WrapRegistererWithPrefix("system_", registry)

	cpuGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cpu_utilization_percent",
	})
	registry.MustRegister(cpuGauge)
	memoryGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "memory_utilization_percent",
	})
	registry.MustRegister(memoryGauge)

	cpuGauge.Set(info.CPUUtilization)
	memoryGauge.Set(info.MemoryUtilization)

	return nil
}

func AddMetricsRouterInfo(registry prometheus.Registerer, info model.DeviceInfo) error {
	registry = prometheus.WrapRegistererWithPrefix("router_", registry)

	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "info",
	}, []string{"model", "serial", "firmware", "name"})
	registry.MustRegister(infoGaugeVec)

	infoGaugeVec.WithLabelValues(info.ModelName, info.SerialNumber, info.FirmwareVersion, info.DeviceName).Set(1)

	// 0 router, 1 access point
	modeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mode",
	})
	registry.MustRegister(modeGauge)

	modeGauge.Set(float64(info.DeviceMode))

	return nil
}
