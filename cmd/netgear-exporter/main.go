package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/swoga/netgear-exporter/api"
	"github.com/swoga/netgear-exporter/collector"
	"github.com/swoga/netgear-exporter/config"
	"github.com/swoga/netgear-exporter/model"
	"github.com/swoga/netgear-exporter/session"
)

var (
	sc       config.SafeConfig
	sessions = session.New()
)

func main() {
	// parse command line args
	configFile := flag.String("config.file", "netgear-exporter.yml", "")
	debug := flag.Bool("debug", false, "")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().
		Str("version", version.Version).
		Str("revision", version.Revision).
		Msg("starting netgear-exporter")
	prometheus.MustRegister(version.NewCollector("netgear_exporter"))

	// initial config load
	sc = config.New(*configFile)
	err := sc.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// setup config reload
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	reloadRequest := make(chan chan error)
	go func() {
		for {
			var err error
			select {
			case <-hup:
				log.Debug().Msg("config reload triggered by SIGHUP")
				err = sc.LoadConfig()
			case reloadResult := <-reloadRequest:
				log.Debug().Msg("config reload triggered by API")
				err = sc.LoadConfig()
				reloadResult <- err
			}
			if err != nil {
				log.Error().Err(err).Msg("error reloading config")
			} else {
				log.Info().Msg("reloaded config file")
			}
		}
	}()

	http.HandleFunc("/-/reload", func(w http.ResponseWriter, r *http.Request) {
		reloadResult := make(chan error)
		reloadRequest <- reloadResult
		err := <-reloadResult
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to reload config: %s", err), http.StatusInternalServerError)
		}
	})

	// start http server
	config := sc.Get()
	http.Handle(config.MetricsPath, promhttp.Handler())
	http.HandleFunc(config.ProbePath, handleRequest)

	log.Info().
		Str("metrics_path", config.MetricsPath).
		Str("probe_path", config.ProbePath).
		Str("listen", config.Listen).
		Msg("starting http server")

	err = http.ListenAndServe(config.Listen, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting http server")
	}
}

func handleRequest(w http.ResponseWriter, r *http.Request) {
	config := sc.Get()
	target := r.URL.Query().Get("target")
	if target == "" {
		log.Error().Msg("request with missing target")
		http.Error(w, "?target= missing", http.StatusBadRequest)
		return
	}

	logger := log.With().Str("target", target).Logger()

	router, ok := config.Routers[target]
	if !ok {
		logger.Error().Msg("unknown target")
		http.Error(w, "unknown target", http.StatusBadRequest)
		return
	}

	timeout := getTimeout(config, r)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout*float64(time.Second)))
	defer cancel()
	r = r.WithContext(ctx)

	start := time.Now()
	registry := prometheus.NewRegistry()
	exporterRegistry := prometheus.WrapRegistererWithPrefix("netgear_exporter_", registry)

	err := probeRouter(ctx, logger, target, router, exporterRegistry)
	var success float64 = 1
	if err != nil {
		logger.Error().Err(err).Msg("error probing router")
		success = 0
	}

	probeDurationGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_duration_seconds",
		Help: "Returns how long the probe took to complete in seconds",
	})
	registry.MustRegister(probeDurationGauge)
	duration := time.Since(start).Seconds()
	probeDurationGauge.Set(duration)

	probeSuccessGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_success",
		Help: "Displays whether or not the probe was a success",
	})
	registry.MustRegister(probeSuccessGauge)
	probeSuccessGauge.Set(success)

	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	h.ServeHTTP(w, r)
}

func getTimeout(config *config.Config, r *http.Request) float64 {
	value := r.Header.Get("X-Prometheus-Scrape-Timeout-Seconds")
	if value != "" {
		timeout, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return timeout
		}
	}
	return config.Timeout
}

type probeResult struct {
	traffic *model.TrafficMeterStatistics
	devices []model.AttachedDevice
	system  *model.SystemInfo
	info    *model.DeviceInfo
}

func probeRouter(ctx context.Context, logger zerolog.Logger, target string, router *config.Router, registry prometheus.Registerer) error {
	options := router.Options

	result, err := getFromAPI(ctx, logger, target, router)
	if err != nil {
		// if there was an error somewhere, retry once with a fresh client,
		// the cached session may have expired
		sessions.Remove(target)
		result, err = getFromAPI(ctx, logger, target, router)
		if err != nil {
			return fmt.Errorf("error after retry: %w", err)
		}
	}

	if options.ExportTraffic && result.traffic != nil {
		collector.AddMetricsTraffic(registry, *result.traffic)
	}
	if options.ExportDevices {
		collector.AddMetricsDevices(registry, result.devices)
	}
	if options.ExportSystem && result.system != nil {
		collector.AddMetricsSystem(registry, *result.system)
	}
	if options.ExportDeviceInfo && result.info != nil {
		collector.AddMetricsRouterInfo(registry, *result.info)
	}

	return nil
}

func getFromAPI(ctx context.Context, logger zerolog.Logger, target string, router *config.Router) (*probeResult, error) {
	client := sessions.Get(target)
	// if there is no logged in client in the store, create and login one
	if client == nil {
		client = api.New(router.Address, &api.Options{
			Timeout: time.Duration(router.Timeout * float64(time.Second)),
			Logger:  &logger,
		})
		if err := client.Login(ctx, router.Username, router.Password); err != nil {
			client.Close()
			return nil, err
		}
		sessions.Set(target, client)
	}

	options := router.Options
	result := &probeResult{}

	if options.ExportTraffic {
		traffic, err := client.GetTrafficMeterStatistics(ctx)
		if err != nil {
			return nil, err
		}
		result.traffic = traffic
	}
	if options.ExportDevices {
		var devices []model.AttachedDevice
		var err error
		if options.UseDevices2 {
			devices, err = client.GetAttachedDevices2(ctx)
		} else {
			devices, err = client.GetAttachedDevices(ctx)
		}
		if err != nil {
			return nil, err
		}
		result.devices = devices
	}
	if options.ExportSystem {
		system, err := client.GetSystemInfo(ctx)
		if err != nil {
			return nil, err
		}
		result.system = system
	}
	if options.ExportDeviceInfo {
		info, err := client.GetInfo(ctx)
		if err != nil {
			return nil, err
		}
		result.info = info
	}

	return result, nil
}
