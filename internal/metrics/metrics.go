/*
 * metrics.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package metrics exposes prometheus collectors for predictions and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmera/cebeconf/krr"
)

const namespace = "cebeconf"

//Buckets, in seconds.
var (
	AtomDurationBuckets    = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
	RequestDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

//Metrics holds the collectors, all registered in their own registry.
type Metrics struct {
	Registry        *prometheus.Registry
	Predictions     *prometheus.CounterVec
	AtomDuration    *prometheus.HistogramVec
	Molecules       prometheus.Counter
	ModelsLoaded    prometheus.Gauge
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

//New returns the metrics, with the Go runtime and process collectors added.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Core binding energies predicted, by element.",
		}, []string{"element"}),
		AtomDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "atom_prediction_seconds",
			Help:      "Time spent predicting the energy of one atom.",
			Buckets:   AtomDurationBuckets,
		}, []string{"element"}),
		Molecules: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "molecules_total",
			Help:      "Molecules processed successfully.",
		}),
		ModelsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_loaded",
			Help:      "Number of element models in memory.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   RequestDurationBuckets,
		}, []string{"route"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Predictions,
		m.AtomDuration,
		m.Molecules,
		m.ModelsLoaded,
		m.Requests,
		m.RequestDuration,
	)
	return m
}

//Observe records a prediction. It can be used as krr.Predictor.Observe.
func (m *Metrics) Observe(p krr.Prediction) {
	if !p.Scored {
		return
	}
	m.Predictions.WithLabelValues(p.Atom.Symbol).Inc()
	m.AtomDuration.WithLabelValues(p.Atom.Symbol).Observe(p.Elapsed.Seconds())
}

//Request records one HTTP request.
func (m *Metrics) Request(route string, code int, d time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

//Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
