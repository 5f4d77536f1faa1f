package selector

import (
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// topPairs limita el ranking de pares a los más frecuentes; con más de
// 50 el score se diluye en ruido de pares que salieron una vez.
const topPairs = 50

// Pares puntúa cada número por su participación en los pares que más
// veces han salido juntos, y elige los Pick mejores.
type Pares struct {
	game domain.Game
}

func NewPares(g domain.Game) *Pares { return &Pares{game: g} }

func (p *Pares) Name() string { return "Pares Frecuentes" }

func (p *Pares) scores(h domain.History) []float64 {
	counts := domain.PairCounts(h)

	type pairCount struct {
		pair  [2]int
		count int
	}
	ranked := make([]pairCount, 0, len(counts))
	for pair, c := range counts {
		ranked = append(ranked, pairCount{pair: pair, count: c})
	}
	// Orden determinista: por frecuencia y, a igualdad, por el par menor.
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].count != ranked[b].count {
			return ranked[a].count > ranked[b].count
		}
		if ranked[a].pair[0] != ranked[b].pair[0] {
			return ranked[a].pair[0] < ranked[b].pair[0]
		}
		return ranked[a].pair[1] < ranked[b].pair[1]
	})
	if len(ranked) > topPairs {
		ranked = ranked[:topPairs]
	}

	scores := make([]float64, p.game.Range)
	for _, pc := range ranked {
		scores[pc.pair[0]-1] += float64(pc.count)
		scores[pc.pair[1]-1] += float64(pc.count)
	}
	return scores
}

func (p *Pares) rank(h domain.History) []int {
	return rankByScore(p.scores(h))
}

func (p *Pares) Select(h domain.History) domain.Selection {
	return domain.TopByScore(p.scores(h), p.game.Pick)
}
