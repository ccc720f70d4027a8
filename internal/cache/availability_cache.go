package cache

import (
	"sync"
	"sync/atomic"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
)

// Recalculamos o hit ratio a cada N lookups para manter o hot path
// livre de float math e de lock.
const ratioEvery = 10

// Key é a tupla literal da consulta, sem normalização de ranges.
// Out 1 a 7 e Out 2 a 8 são entradas distintas, ao custo de computação
// duplicada.
type Key struct {
	BarberID    uint
	RangeStart  string // YYYY-MM-DD
	RangeEnd    string // YYYY-MM-DD
	DurationMin int
}

type entry struct {
	days       []domain.DayAvailability
	insertedAt time.Time
}

// AvailabilityCache é um cache TTL na frente da calculadora de
// disponibilidade. Entradas são sempre substituídas inteiras, nunca
// mutadas no lugar; leitores jamais observam um resultado pela metade.
type AvailabilityCache struct {
	mu      sync.RWMutex
	entries map[Key]*entry

	ttl   time.Duration
	clock clock.Clock

	lookups atomic.Int64
	hits    atomic.Int64

	metrics *metrics.Set
}

func New(ttl time.Duration, clk clock.Clock, m *metrics.Set) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &AvailabilityCache{
		entries: make(map[Key]*entry),
		ttl:     ttl,
		clock:   clk,
		metrics: m,
	}
}

// Get retorna o resultado cacheado, ou ok=false em miss. Entrada lida
// depois de insertedAt+TTL é tratada como ausente mesmo sem eviction.
func (c *AvailabilityCache) Get(key Key) ([]domain.DayAvailability, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	now := c.clock.Now()

	hit := found && now.Before(e.insertedAt.Add(c.ttl))
	c.count(hit)

	if !hit {
		return nil, false
	}
	return e.days, true
}

// Set substitui a entrada inteira.
func (c *AvailabilityCache) Set(key Key, days []domain.DayAvailability) {
	e := &entry{
		days:       days,
		insertedAt: c.clock.Now(),
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Invalidate remove toda entrada do barbeiro cujo range inclui a data.
// Chamado pelo coordinator após cada mutação bem-sucedida, antes do
// retorno ao caller.
func (c *AvailabilityCache) Invalidate(barberID uint, date time.Time) {
	day := date.UTC().Format("2006-01-02")

	c.mu.Lock()
	for key := range c.entries {
		if key.BarberID != barberID {
			continue
		}
		// Comparação lexicográfica funciona para datas ISO.
		if key.RangeStart <= day && day <= key.RangeEnd {
			delete(c.entries, key)
			if c.metrics != nil {
				c.metrics.CacheInvalidations.Inc()
			}
		}
	}
	c.mu.Unlock()
}

// InvalidateBarber descarta tudo do barbeiro, qualquer range. Usado
// quando a grade de horários muda, o que afeta todos os dias de uma vez.
func (c *AvailabilityCache) InvalidateBarber(barberID uint) {
	c.mu.Lock()
	for key := range c.entries {
		if key.BarberID == barberID {
			delete(c.entries, key)
			if c.metrics != nil {
				c.metrics.CacheInvalidations.Inc()
			}
		}
	}
	c.mu.Unlock()
}

// Len existe para observabilidade e testes.
func (c *AvailabilityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// HitRatio retorna a última razão calculada de forma aproximada.
func (c *AvailabilityCache) HitRatio() float64 {
	lookups := c.lookups.Load()
	if lookups == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(lookups)
}

func (c *AvailabilityCache) count(hit bool) {
	lookups := c.lookups.Add(1)
	if hit {
		c.hits.Add(1)
	}

	if c.metrics != nil {
		c.metrics.CacheLookups.Inc()
		if hit {
			c.metrics.CacheHits.Inc()
		} else {
			c.metrics.CacheMisses.Inc()
		}

		if lookups%ratioEvery == 0 {
			c.metrics.CacheHitRatio.Set(float64(c.hits.Load()) / float64(lookups))
		}
	}
}
