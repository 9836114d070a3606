// Copyright 2025 Campustudio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	opsTotal    *prometheus.CounterVec
	lockedTotal *prometheus.GaugeVec
	schedules   prometheus.Gauge
	paused      prometheus.Gauge
}

func (m *ledgerMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.opsTotal = promautoFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "vesting_ledger_operations_total",
		Help: "total ledger operations by kind and result",
	}, []string{"op", "result"})
	m.lockedTotal = promautoFactory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vesting_ledger_locked_total",
		Help: "custodied value still committed to non-revoked schedules, per asset",
	}, []string{"asset"})
	m.schedules = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "vesting_ledger_schedules",
		Help: "number of schedule records",
	})
	m.paused = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "vesting_ledger_paused",
		Help: "1 while the ledger is paused, 0 otherwise",
	})
}

func (m *ledgerMetrics) observeOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.opsTotal.WithLabelValues(op, result).Inc()
}
