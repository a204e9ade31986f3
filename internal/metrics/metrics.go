package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "lichess_challenger"

// Metrics collects the counters of a single run. A run is short lived, so the
// values are pushed to a Pushgateway rather than scraped.
type Metrics struct {
	registry          *prometheus.Registry
	runsCounter       *prometheus.CounterVec
	skippedCounter    *prometheus.CounterVec
	challengesCounter *prometheus.CounterVec
	rosterSizeGauge   prometheus.Gauge
	lastRunGauge      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "challenger_runs_total",
			Help: "Number of runs by outcome",
		}, []string{"outcome"}),
		skippedCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "challenger_candidates_skipped_total",
			Help: "Number of candidates passed over by reason",
		}, []string{"reason"}),
		challengesCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "challenger_challenges_sent_total",
			Help: "Number of challenges sent by speed category",
		}, []string{"category"}),
		rosterSizeGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "challenger_roster_size",
			Help: "Number of bot profiles fetched in the last run",
		}),
		lastRunGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "challenger_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	m.registry.MustRegister(m.runsCounter, m.skippedCounter, m.challengesCounter, m.rosterSizeGauge, m.lastRunGauge)
	return m
}

func (m *Metrics) RunFinished(outcome string) {
	m.runsCounter.WithLabelValues(outcome).Inc()
	m.lastRunGauge.SetToCurrentTime()
}

func (m *Metrics) CandidateSkipped(reason string) {
	m.skippedCounter.WithLabelValues(reason).Inc()
}

func (m *Metrics) ChallengeSent(category string) {
	m.challengesCounter.WithLabelValues(category).Inc()
}

func (m *Metrics) SetRosterSize(n int) {
	m.rosterSizeGauge.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push sends the collected values to the Pushgateway at url, grouped by bot name.
func (m *Metrics) Push(url string, botName string) error {
	err := push.New(url, jobName).
		Gatherer(m.registry).
		Grouping("bot", botName).
		Push()
	if err != nil {
		return errors.Wrapf(err, "Unable to push metrics to %s", url)
	}
	return nil
}
