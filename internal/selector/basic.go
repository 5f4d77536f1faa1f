package selector

import (
	"math/rand"
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// basic.go — métodos simples sobre una sola tabla de scores.

// Aleatorio es el baseline sin información: Pick números distintos
// uniformes del rango. Nunca se presenta como competitivo; existe para
// que el resto de métodos tenga contra qué medirse.
type Aleatorio struct {
	game domain.Game
	rng  *rand.Rand
}

// NewAleatorio crea el baseline con la semilla dada. El generador es
// explícito: nada de estado global, la reproducibilidad manda.
func NewAleatorio(g domain.Game, seed int64) *Aleatorio {
	return &Aleatorio{game: g, rng: rand.New(rand.NewSource(seed))}
}

func (a *Aleatorio) Name() string { return "Aleatorio Puro" }

// WithSeed devuelve una copia con un generador nuevo sembrado.
func (a *Aleatorio) WithSeed(seed int64) Selector {
	return NewAleatorio(a.game, seed)
}

func (a *Aleatorio) Select(_ domain.History) domain.Selection {
	perm := a.rng.Perm(a.game.Range)
	sel := make(domain.Selection, a.game.Pick)
	for i := 0; i < a.game.Pick; i++ {
		sel[i] = perm[i] + 1
	}
	sort.Ints(sel)
	return sel
}

// Frecuencias elige los números con más apariciones en todo el histórico.
type Frecuencias struct {
	game domain.Game
}

func NewFrecuencias(g domain.Game) *Frecuencias { return &Frecuencias{game: g} }

func (f *Frecuencias) Name() string { return "Frecuencias" }

func (f *Frecuencias) scores(h domain.History) []float64 {
	freq := domain.FrequencyTable(h, f.game)
	scores := make([]float64, len(freq))
	for i, c := range freq {
		scores[i] = float64(c)
	}
	return scores
}

func (f *Frecuencias) rank(h domain.History) []int {
	return rankByScore(f.scores(h))
}

func (f *Frecuencias) Select(h domain.History) domain.Selection {
	return domain.TopByScore(f.scores(h), f.game.Pick)
}

// Frios elige los números que menos han salido.
type Frios struct {
	game domain.Game
}

func NewFrios(g domain.Game) *Frios { return &Frios{game: g} }

func (f *Frios) Name() string { return "Numeros Frios" }

func (f *Frios) Select(h domain.History) domain.Selection {
	freq := domain.FrequencyTable(h, f.game)
	scores := make([]float64, len(freq))
	for i, c := range freq {
		scores[i] = float64(c)
	}
	return domain.BottomByScore(scores, f.game.Pick)
}

// Debidos elige los números que más sorteos llevan sin salir.
type Debidos struct {
	game domain.Game
}

func NewDebidos(g domain.Game) *Debidos { return &Debidos{game: g} }

func (d *Debidos) Name() string { return "Numeros Debidos" }

func (d *Debidos) rank(h domain.History) []int {
	return rankByScore(domain.OverdueScore(h, d.game))
}

func (d *Debidos) Select(h domain.History) domain.Selection {
	return domain.TopByScore(domain.OverdueScore(h, d.game), d.game.Pick)
}

// Calientes elige los más frecuentes dentro de la ventana reciente.
type Calientes struct {
	game   domain.Game
	window int
}

func NewCalientes(g domain.Game, window int) *Calientes {
	return &Calientes{game: g, window: window}
}

func (c *Calientes) Name() string { return "Calientes" }

func (c *Calientes) scores(h domain.History) []float64 {
	freq := domain.FrequencyTable(domain.RecencyWindow(h, c.window), c.game)
	scores := make([]float64, len(freq))
	for i, cnt := range freq {
		scores[i] = float64(cnt)
	}
	return scores
}

func (c *Calientes) rank(h domain.History) []int {
	return rankByScore(c.scores(h))
}

func (c *Calientes) Select(h domain.History) domain.Selection {
	return domain.TopByScore(c.scores(h), c.game.Pick)
}
