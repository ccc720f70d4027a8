package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set agrupa os contadores expostos em /metrics. O core só incrementa
// e seta valores; quem lê é o coletor externo.
type Set struct {
	CacheLookups       prometheus.Counter
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations prometheus.Counter
	CacheHitRatio      prometheus.Gauge

	AppointmentsCreated   prometheus.Counter
	AppointmentsConfirmed prometheus.Counter
	AppointmentsCancelled prometheus.Counter
	AppointmentsCompleted prometheus.Counter
	BookingConflicts      prometheus.Counter
}

func New(registerer prometheus.Registerer) *Set {
	factory := promauto.With(registerer)

	return &Set{
		CacheLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_lookups_total",
			Help: "Total de consultas ao cache de disponibilidade.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_hits_total",
			Help: "Consultas respondidas pelo cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_misses_total",
			Help: "Consultas que exigiram recomputar a disponibilidade.",
		}),
		CacheInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_invalidations_total",
			Help: "Entradas removidas após mutação de agenda.",
		}),
		CacheHitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "availability_cache_hit_ratio",
			Help: "Hit ratio recalculado periodicamente.",
		}),

		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Agendamentos criados.",
		}),
		AppointmentsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "appointments_confirmed_total",
			Help: "Agendamentos confirmados.",
		}),
		AppointmentsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "appointments_cancelled_total",
			Help: "Agendamentos cancelados.",
		}),
		AppointmentsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "appointments_completed_total",
			Help: "Agendamentos concluídos.",
		}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Tentativas de double-booking rejeitadas.",
		}),
	}
}

// NewUnregistered é útil em testes: mesmas métricas, registry isolado.
func NewUnregistered() *Set {
	return New(prometheus.NewRegistry())
}
