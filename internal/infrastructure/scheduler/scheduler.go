// Package scheduler dispara el evaluador de reorden automático a intervalos fijos.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// Job trabajo periódico; devuelve cuántas órdenes generó.
type Job interface {
	RunAllCompanies(ctx context.Context) (int, error)
}

// Ticker ejecuta Job cada Interval hasta que se cancele el contexto. Nunca solapa ejecuciones.
type Ticker struct {
	job      Job
	interval time.Duration
	log      *logger.Logger

	wg sync.WaitGroup
}

// NewTicker construye el planificador.
func NewTicker(job Job, interval time.Duration, log *logger.Logger) *Ticker {
	if log == nil {
		log = logger.Nop()
	}
	return &Ticker{job: job, interval: interval, log: log}
}

// Start lanza el bucle en una goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.loop(ctx)
	}()
}

// Wait bloquea hasta que el bucle termine (tras cancelar el contexto de Start).
func (t *Ticker) Wait() { t.wg.Wait() }

func (t *Ticker) loop(ctx context.Context) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	t.log.Info().Dur("interval", t.interval).Msg("reorden automático programado")
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.tick(ctx)
		}
	}
}

func (t *Ticker) tick(ctx context.Context) {
	start := time.Now()
	n, err := t.job.RunAllCompanies(ctx)
	if err != nil {
		t.log.Error().Err(err).Msg("reorden automático falló")
		return
	}
	t.log.Info().Int("orders_created", n).Dur("took", time.Since(start)).Msg("reorden automático completado")
}
