// Copyright 2025 Blink Labs Software
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

type stateMetrics struct {
	operations      *prometheus.CounterVec
	promotions      prometheus.Counter
	payoutsCredited prometheus.Counter
	payoutsPaid     prometheus.Counter
	operational     prometheus.Gauge
}

func (m *stateMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.operations = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightsurety_operations_total",
			Help: "total ledger operations by name and outcome",
		},
		[]string{"operation", "outcome"},
	)
	m.promotions = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "flightsurety_airline_promotions_total",
		Help: "total airline state promotions",
	})
	m.payoutsCredited = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "flightsurety_payouts_credited_total",
		Help: "total amount credited to pending payouts",
	})
	m.payoutsPaid = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "flightsurety_payouts_paid_total",
		Help: "total amount transferred to beneficiaries",
	})
	m.operational = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "flightsurety_operational",
		Help: "whether the operational gate is open (0 or 1)",
	})
}

// operation records the outcome of a single ledger operation
func (m *stateMetrics) operation(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(name, outcome).Inc()
}

func (m *stateMetrics) setOperational(operational bool) {
	if operational {
		m.operational.Set(1)
	} else {
		m.operational.Set(0)
	}
}
