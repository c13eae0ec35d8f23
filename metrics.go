// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type arenaMetrics struct {
	allocations prometheus.Counter
	adoptions   prometheus.Counter
	frees       prometheus.Counter
	bytesInUse  prometheus.Gauge
}

// newArenaMetrics creates the arena collectors. A nil reg leaves them
// unregistered.
func newArenaMetrics(reg prometheus.Registerer, name string) *arenaMetrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"arena": name}
	return &arenaMetrics{
		allocations: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "emplace",
			Subsystem:   "arena",
			Name:        "allocations_total",
			Help:        "Total number of blocks allocated from the arena.",
			ConstLabels: labels,
		}),
		adoptions: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "emplace",
			Subsystem:   "arena",
			Name:        "adoptions_total",
			Help:        "Total number of blocks finalized into owned values.",
			ConstLabels: labels,
		}),
		frees: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "emplace",
			Subsystem:   "arena",
			Name:        "frees_total",
			Help:        "Total number of blocks abandoned or destroyed.",
			ConstLabels: labels,
		}),
		bytesInUse: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   "emplace",
			Subsystem:   "arena",
			Name:        "bytes_in_use",
			Help:        "Bytes currently allocated from the arena.",
			ConstLabels: labels,
		}),
	}
}

func (m *arenaMetrics) unregister(reg prometheus.Registerer) {
	reg.Unregister(m.allocations)
	reg.Unregister(m.adoptions)
	reg.Unregister(m.frees)
	reg.Unregister(m.bytesInUse)
}
