package backtest

// backtest.go — evaluación walk-forward de los métodos de selección.
//
// Para cada sorteo de los últimos N: se predice usando SOLO los sorteos
// anteriores, se compara con el resultado real y se acumula el número de
// aciertos en un histograma. El informe compara cada método contra el
// valor esperado teórico Pick²/Range: lo que no lo supere es ruido.

import (
	"context"
	"fmt"
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

// skipped marca un paso sin prefijo evaluable (el primer sorteo).
const skipped = -1

// Config controla la evaluación.
type Config struct {
	Evaluations int   // últimos N sorteos a evaluar
	Reps        int   // repeticiones por paso; se conserva el mejor resultado
	Workers     int   // pasos en paralelo; <=1 = secuencial
	Seed        int64 // semilla base; cada paso deriva la suya
}

// DefaultConfig devuelve la configuración de referencia.
func DefaultConfig() Config {
	return Config{Evaluations: 300, Reps: 1, Workers: 1, Seed: 1}
}

// Result es el agregado de un método tras el walk-forward.
type Result struct {
	Method      string
	Histogram   []int // índice = aciertos, 0..Pick
	Evaluated   int   // pasos con prefijo no vacío
	MeanHits    float64
	PctAtLeast3 float64 // % de evaluaciones con 3+ aciertos
	PctAtLeast4 float64
	Baseline    float64 // Pick²/Range: media esperada sin información
}

// BeatsBaseline indica si la media medida supera al azar puro.
func (r Result) BeatsBaseline() bool {
	return r.MeanHits > r.Baseline
}

// Run evalúa un método sobre los últimos cfg.Evaluations sorteos.
// El histórico se valida entero antes de arrancar: un sorteo malformado
// es fatal, no se salta (saltarlo sesgaría todas las estadísticas).
func Run(ctx context.Context, cfg Config, g domain.Game, h domain.History, sel selector.Selector) (Result, error) {
	if err := h.Validate(g); err != nil {
		return Result{}, fmt.Errorf("backtest.Run: %w", err)
	}
	if cfg.Evaluations <= 0 {
		return Result{}, fmt.Errorf("backtest.Run: evaluations must be positive, got %d", cfg.Evaluations)
	}
	if cfg.Reps <= 0 {
		cfg.Reps = 1
	}

	start := len(h) - cfg.Evaluations
	if start < 0 {
		start = 0
	}
	steps := len(h) - start
	if steps <= 0 {
		return Result{}, fmt.Errorf("backtest.Run: empty history")
	}

	hits := make([]int, steps)
	var err error
	if cfg.Workers > 1 {
		err = evaluateConcurrent(ctx, cfg, h, sel, start, hits)
	} else {
		err = evaluateSequential(ctx, cfg, h, sel, start, hits)
	}
	if err != nil {
		return Result{}, err
	}

	return reduce(sel.Name(), g, hits), nil
}

// evaluateSequential recorre los pasos en orden.
func evaluateSequential(ctx context.Context, cfg Config, h domain.History, sel selector.Selector, start int, hits []int) error {
	for i := start; i < len(h); i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("backtest: aborted at step %d: %w", i, err)
		}
		hits[i-start] = evaluateStep(cfg, h, sel, i)
	}
	return nil
}

// evaluateStep evalúa un paso: predicción con el prefijo estricto y
// conteo de aciertos contra el sorteo real. Con Reps > 1 se queda con el
// mejor resultado — el encuadre más generoso posible para el baseline
// aleatorio.
func evaluateStep(cfg Config, h domain.History, sel selector.Selector, i int) int {
	prefix := h.Prefix(i)
	if len(prefix) == 0 {
		return skipped
	}

	// Semilla derivada por paso: mismo resultado con o sin workers.
	s := sel
	if st, ok := sel.(selector.Stochastic); ok {
		s = st.WithSeed(cfg.Seed + int64(i))
	}

	best := 0
	for r := 0; r < cfg.Reps; r++ {
		pred := s.Select(prefix)
		if ac := pred.Hits(h[i]); ac > best {
			best = ac
		}
	}
	return best
}

// reduce agrega los aciertos por paso en el resultado final.
func reduce(method string, g domain.Game, hits []int) Result {
	res := Result{
		Method:    method,
		Histogram: make([]int, g.Pick+1),
		Baseline:  g.ExpectedHits(),
	}

	total := 0
	for _, ac := range hits {
		if ac == skipped {
			continue
		}
		res.Histogram[ac]++
		res.Evaluated++
		total += ac
	}
	if res.Evaluated == 0 {
		return res
	}

	res.MeanHits = float64(total) / float64(res.Evaluated)
	at3, at4 := 0, 0
	for ac, count := range res.Histogram {
		if ac >= 3 {
			at3 += count
		}
		if ac >= 4 {
			at4 += count
		}
	}
	res.PctAtLeast3 = float64(at3) / float64(res.Evaluated) * 100
	res.PctAtLeast4 = float64(at4) / float64(res.Evaluated) * 100
	return res
}

// RunAll evalúa todos los métodos del registro y devuelve los resultados
// en orden de registro.
func RunAll(ctx context.Context, cfg Config, g domain.Game, h domain.History, selectors []selector.Selector) ([]Result, error) {
	results := make([]Result, 0, len(selectors))
	for _, sel := range selectors {
		res, err := Run(ctx, cfg, g, h, sel)
		if err != nil {
			return nil, fmt.Errorf("backtest.RunAll: %s: %w", sel.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RankByMean devuelve una copia ordenada por media de aciertos
// descendente, para el ranking del informe.
func RankByMean(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].MeanHits > ranked[b].MeanHits
	})
	return ranked
}
