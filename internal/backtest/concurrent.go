package backtest

// concurrent.go — worker pool para evaluar pasos del walk-forward en
// paralelo.
//
// Cada paso es independiente: lee un prefijo inmutable del histórico y
// escribe en su propia posición del slice de resultados, así que no hay
// estado compartido que proteger. Las semillas derivadas por paso hacen
// que el resultado sea bit a bit idéntico al recorrido secuencial.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

// evaluateConcurrent reparte los pasos entre cfg.Workers goroutines.
// Si workers <= 0 usa runtime.NumCPU().
func evaluateConcurrent(ctx context.Context, cfg Config, h domain.History, sel selector.Selector, start int, hits []int) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	stepCh := make(chan int, len(hits))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range stepCh {
				if ctx.Err() != nil {
					continue // drenar el canal sin trabajar
				}
				hits[i-start] = evaluateStep(cfg, h, sel, i)
			}
		}()
	}

	for i := start; i < len(h); i++ {
		stepCh <- i
	}
	close(stepCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("backtest: aborted: %w", err)
	}

	slog.Debug("concurrent evaluation complete",
		"steps", len(hits),
		"workers", workers,
	)
	return nil
}
