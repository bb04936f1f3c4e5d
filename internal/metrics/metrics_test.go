/*
 * metrics_test.go, part of cebeconf.
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

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/krr"
)

func TestObserve(Te *testing.T) {
	m := New()
	c := &cebe.Atom{Symbol: "C", Z: 6}
	h := &cebe.Atom{Symbol: "H", Z: 1}
	m.Observe(krr.Prediction{Atom: c, Scored: true, Energy: 290, Elapsed: time.Millisecond})
	m.Observe(krr.Prediction{Atom: c, Scored: true, Energy: 291, Elapsed: time.Millisecond})
	m.Observe(krr.Prediction{Atom: h})
	assert.Equal(Te, 2.0, testutil.ToFloat64(m.Predictions.WithLabelValues("C")))
	assert.Equal(Te, 0.0, testutil.ToFloat64(m.Predictions.WithLabelValues("H")))
	assert.Equal(Te, 1, testutil.CollectAndCount(m.AtomDuration, "cebeconf_atom_prediction_seconds"))
}

func TestHandler(Te *testing.T) {
	m := New()
	m.ModelsLoaded.Set(4)
	m.Request("/v1/predict", 200, 10*time.Millisecond)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(Te, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(Te, err)
	assert.Contains(Te, string(body), "cebeconf_models_loaded 4")
	assert.Contains(Te, string(body), `cebeconf_http_requests_total{code="200",route="/v1/predict"} 1`)
	assert.Contains(Te, string(body), "go_goroutines")
}
