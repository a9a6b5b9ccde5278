package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	trialLaunches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trialkeeper",
		Name:      "trial_launches_total",
		Help:      "Total number of trial processes launched, by platform tag.",
	}, []string{"platform"})

	trialKills = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trialkeeper",
		Name:      "trial_kills_total",
		Help:      "Total number of termination signals issued to trials.",
	})

	probeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trialkeeper",
		Name:      "probe_duration_seconds",
		Help:      "Latency of filesystem probe executions in seconds.",
	})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "trialkeeper",
		Name:      "build_info",
		Help:      "Build metadata for the running trialkeeper binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(trialLaunches, trialKills, probeDuration, buildInfo)
}

// Registry returns the Prometheus registry containing all trialkeeper metrics.
func Registry() *prometheus.Registry {
	return registry
}

// ObserveLaunch records a successful trial spawn for the platform tag.
func ObserveLaunch(platform string) {
	if platform == "" {
		platform = "unknown"
	}
	trialLaunches.WithLabelValues(platform).Inc()
}

// ObserveKill records an issued termination signal.
func ObserveKill() {
	trialKills.Inc()
}

// ObserveProbeDuration records the latency of a filesystem probe.
func ObserveProbeDuration(d time.Duration) {
	probeDuration.Observe(d.Seconds())
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
