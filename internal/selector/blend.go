package selector

import (
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// Mixto combina frecuencia histórica, calientes recientes y debidos con
// pesos fijos (la configuración de referencia es 15/70/15). Cada
// sub-score se mide como desviación sobre su valor esperado y se
// normaliza a [0,1] antes de mezclar.
//
// Con menos de minHistory sorteos no hay señal que mezclar: cae al
// baseline aleatorio, como documenta su contrato.
type Mixto struct {
	game       domain.Game
	weights    BlendWeights
	window     int
	minHistory int
	fallback   Selector
}

// NewMixto crea el método mixto. fallback se usa bajo minHistory.
func NewMixto(g domain.Game, w BlendWeights, window, minHistory int, fallback Selector) *Mixto {
	return &Mixto{game: g, weights: w, window: window, minHistory: minHistory, fallback: fallback}
}

func (m *Mixto) Name() string { return "Mixto 15/70/15" }

// Ready indica si hay histórico suficiente para mezclar señal.
func (m *Mixto) Ready(h domain.History) bool {
	return len(h) >= m.minHistory
}

// Scores devuelve el score combinado por número. Exportado porque el
// simulador de premios construye su pool de candidatos sobre él.
func (m *Mixto) Scores(h domain.History) []float64 {
	total := len(h)
	g := m.game

	// Frecuencia histórica como desviación sobre lo esperado por azar.
	freq := domain.FrequencyTable(h, g)
	expected := float64(total) * float64(g.Pick) / float64(g.Range)
	if expected < 1 {
		expected = 1
	}
	sf := make([]float64, g.Range)
	for i, c := range freq {
		sf[i] = (float64(c) - expected) / expected
	}

	// Calientes: la ventana se encoge con históricos cortos (total/3)
	// pero nunca baja de 5 sorteos.
	win := m.window
	if t := total / 3; t < win {
		win = t
	}
	if win < 5 {
		win = 5
	}
	recentFreq := domain.FrequencyTable(domain.RecencyWindow(h, win), g)
	expectedRecent := float64(win) * float64(g.Pick) / float64(g.Range)
	if expectedRecent < 1 {
		expectedRecent = 1
	}
	sc := make([]float64, g.Range)
	for i, c := range recentFreq {
		sc[i] = (float64(c) - expectedRecent) / expectedRecent
	}

	// Debidos: sorteos sin salir frente al ciclo medio de cada número.
	overdue := domain.OverdueScore(h, g)
	sd := make([]float64, g.Range)
	for i := range sd {
		cycle := float64(total)
		if freq[i] > 0 {
			cycle = float64(total) / float64(freq[i])
		}
		if cycle < 1 {
			cycle = 1
		}
		sd[i] = (overdue[i] - cycle) / cycle
	}

	nf := domain.Normalize(sf)
	nc := domain.Normalize(sc)
	nd := domain.Normalize(sd)

	out := make([]float64, g.Range)
	for i := range out {
		out[i] = m.weights.Frequency*nf[i] + m.weights.Recent*nc[i] + m.weights.Overdue*nd[i]
	}
	return out
}

// WithSeed re-siembra el fallback aleatorio; la parte de scores es
// determinista y no necesita semilla.
func (m *Mixto) WithSeed(seed int64) Selector {
	if st, ok := m.fallback.(Stochastic); ok {
		cp := *m
		cp.fallback = st.WithSeed(seed)
		return &cp
	}
	return m
}

func (m *Mixto) rank(h domain.History) []int {
	return rankByScore(m.Scores(h))
}

func (m *Mixto) Select(h domain.History) domain.Selection {
	if !m.Ready(h) {
		return m.fallback.Select(h)
	}
	return domain.TopByScore(m.Scores(h), m.game.Pick)
}
