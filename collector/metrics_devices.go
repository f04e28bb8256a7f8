package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swoga/netgear-exporter/model"
)

func AddMetricsDevices(registry prometheus.Registerer, devices []model.AttachedDevice) error {
	registry = prometheus.WrapRegistererWithPrefix("device_", registry)

	countGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "count",
	})
	registry.MustRegister(countGauge)

	countGauge.Set(float64(len(devices)))

	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "info",
	}, []string{"mac", "ip", "name", "connection_type", "ssid"})
	registry.MustRegister(infoGaugeVec)

	linkRateGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "link_rate_mbits",
	}, []string{"mac"})
	registry.MustRegister(linkRateGaugeVec)
	signalGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "signal_strength_percent",
	}, []string{"mac"})
	registry.MustRegister(signalGaugeVec)
	blockedGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "blocked",
	}, []string{"mac"})
	registry.MustRegister(blockedGaugeVec)
	scheduleGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule",
	}, []string{"mac"})
	registry.MustRegister(scheduleGaugeVec)

	for _, device := range devices {
		var name, connectionType, ssid string
		if device.Hostname != nil {
			name = *device.Hostname
		}
		if device.ConnectionType != nil {
			connectionType = string(*device.ConnectionType)
		}
		if device.SSID != nil {
			ssid = *device.SSID
		}
		infoGaugeVec.WithLabelValues(device.MAC, device.IP, name, connectionType, ssid).Set(1)

		// link rate, signal and blocked are not reported for every device
		if device.LinkSpeed != nil {
			linkRateGaugeVec.WithLabelValues(device.MAC).Set(float64(*device.LinkSpeed))
		}
		if device.SignalStrength != nil {
			signalGaugeVec.WithLabelValues(device.MAC).Set(float64(*device.SignalStrength))
		}
		if device.Blocked != nil {
			var blocked float64
			if *device.Blocked {
				blocked = 1
			}
			blockedGaugeVec.WithLabelValues(device.MAC).Set(blocked)
		}
		if device.Schedule != nil {
			var schedule float64
			if *device.Schedule {
				schedule = 1
			}
			scheduleGaugeVec.WithLabelValues(device.MAC).Set(schedule)
		}
	}

	return nil
}
