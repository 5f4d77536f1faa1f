package prize

// simulator.go — simulación monetaria de carteras de boletos.
//
// El mismo loop walk-forward del backtester, pero en vez de una
// predicción por sorteo se juega una cartera de boletos con coste de 1
// unidad cada uno. Por sorteo se cobra SOLO la mejor categoría alcanzada
// entre los boletos — en la realidad no se acumulan premios dentro de la
// misma jugada — aunque el desglose cuenta todas las categorías tocadas.

import (
	"context"
	"fmt"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// StrategyResult es el agregado monetario de una estrategia.
type StrategyResult struct {
	Strategy   string
	Draws      int     // sorteos simulados
	Spent      float64 // coste total: 1 unidad por boleto
	Won        float64 // suma de la mejor categoría de cada sorteo
	Balance    float64 // Won - Spent
	Categories map[string]int // boletos ganadores por categoría, todo el run
}

// Simulator ejecuta la simulación de premios para un juego.
type Simulator struct {
	game    domain.Game
	payouts domain.PayoutTable
}

// NewSimulator crea el simulador con la tabla de premios dada.
func NewSimulator(g domain.Game, payouts domain.PayoutTable) *Simulator {
	return &Simulator{game: g, payouts: payouts}
}

// Run simula la estrategia sobre los últimos draws sorteos del
// histórico. Igual que el backtester, valida todo antes de empezar.
func (s *Simulator) Run(ctx context.Context, h domain.History, strat TicketStrategy, draws int) (StrategyResult, error) {
	if err := h.Validate(s.game); err != nil {
		return StrategyResult{}, fmt.Errorf("prize.Run: %w", err)
	}
	if draws <= 0 {
		return StrategyResult{}, fmt.Errorf("prize.Run: draws must be positive, got %d", draws)
	}

	start := len(h) - draws
	if start < 0 {
		start = 0
	}

	res := StrategyResult{
		Strategy:   strat.Name(),
		Categories: make(map[string]int),
	}

	for i := start; i < len(h); i++ {
		if err := ctx.Err(); err != nil {
			return StrategyResult{}, fmt.Errorf("prize.Run: aborted at draw %d: %w", i, err)
		}

		prefix := h.Prefix(i)
		actual := h[i]
		tickets := strat.Tickets(prefix)

		res.Draws++
		res.Spent += float64(len(tickets))

		var best domain.PayoutTier
		haveBest := false
		for _, t := range tickets {
			hits := t.Numbers.Hits(actual)
			reintegro := t.Reintegro == actual.Reintegro
			tier, ok := s.payouts.Match(hits, reintegro)
			if !ok {
				continue
			}
			res.Categories[tier.Category]++
			if !haveBest || tier.Value > best.Value {
				best, haveBest = tier, true
			}
		}
		if haveBest {
			res.Won += best.Value
		}
	}

	res.Balance = res.Won - res.Spent
	return res, nil
}

// RunAll simula todas las estrategias con el mismo histórico y número de
// sorteos, para una comparación de balances con coste idéntico.
func (s *Simulator) RunAll(ctx context.Context, h domain.History, strategies []TicketStrategy, draws int) ([]StrategyResult, error) {
	results := make([]StrategyResult, 0, len(strategies))
	for _, strat := range strategies {
		res, err := s.Run(ctx, h, strat, draws)
		if err != nil {
			return nil, fmt.Errorf("prize.RunAll: %s: %w", strat.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}
