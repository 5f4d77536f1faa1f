package selector

import (
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// ensemble.go — métodos compuestos: votación ponderada y consenso.
//
// Ambos piden a sus votantes listas de candidatos más largas que Pick
// (la cara interna ranker) y agregan sobre ellas.

// Ensemble suma votos ponderados por rango: el candidato en la posición
// 1 de un votante aporta size puntos, el último aporta 1.
type Ensemble struct {
	game   domain.Game
	size   int // candidatos que aporta cada votante
	voters []ranker
}

// NewEnsemble crea la votación sobre los métodos dados. Los votantes
// deben ser métodos basados en score (con orden completo).
func NewEnsemble(g domain.Game, size int, voters ...ranker) *Ensemble {
	return &Ensemble{game: g, size: size, voters: voters}
}

func (e *Ensemble) Name() string { return "Ensemble Votacion" }

func (e *Ensemble) scores(h domain.History) []float64 {
	votes := make([]float64, e.game.Range)
	for _, v := range e.voters {
		order := v.rank(h)
		limit := e.size
		if limit > len(order) {
			limit = len(order)
		}
		for pos := 0; pos < limit; pos++ {
			votes[order[pos]-1] += float64(e.size - pos)
		}
	}
	return votes
}

func (e *Ensemble) rank(h domain.History) []int {
	return rankByScore(e.scores(h))
}

func (e *Ensemble) Select(h domain.History) domain.Selection {
	return domain.TopByScore(e.scores(h), e.game.Pick)
}

// Consenso cuenta en cuántos sets de candidatos (top setSize de cada
// votante) aparece cada número y devuelve los Pick con participación
// mínima minVotes; si no llegan a Pick, rellena con los siguientes por
// participación.
type Consenso struct {
	game     domain.Game
	setSize  int
	minVotes int
	voters   []ranker
}

// NewConsenso crea el método de consenso sobre los votantes dados.
func NewConsenso(g domain.Game, setSize, minVotes int, voters ...ranker) *Consenso {
	return &Consenso{game: g, setSize: setSize, minVotes: minVotes, voters: voters}
}

func (c *Consenso) Name() string { return "Consenso" }

func (c *Consenso) Select(h domain.History) domain.Selection {
	participation := make([]float64, c.game.Range)
	for _, v := range c.voters {
		order := v.rank(h)
		limit := c.setSize
		if limit > len(order) {
			limit = len(order)
		}
		for pos := 0; pos < limit; pos++ {
			participation[order[pos]-1]++
		}
	}

	// Primero los que alcanzan el umbral; el relleno hasta Pick sale de
	// los siguientes por participación. Tomar el top Pick del vector de
	// participación hace exactamente eso, porque los que cumplen el
	// umbral puntúan por encima de los que no.
	return domain.TopByScore(participation, c.game.Pick)
}

// Qualified devuelve cuántos números alcanzan el umbral de participación
// en este prefijo. Útil para diagnosticar cuánta señal real hay.
func (c *Consenso) Qualified(h domain.History) int {
	participation := make([]float64, c.game.Range)
	for _, v := range c.voters {
		order := v.rank(h)
		limit := c.setSize
		if limit > len(order) {
			limit = len(order)
		}
		for pos := 0; pos < limit; pos++ {
			participation[order[pos]-1]++
		}
	}
	n := 0
	for _, p := range participation {
		if int(p) >= c.minVotes {
			n++
		}
	}
	return n
}
