package selector

import (
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// MomentumRefinado combina el momentum multi-ventana con la aceleración
// (mezcla de referencia 70/30), elige el top Pick y aplica el refinado
// estructural para mantener la suma en el rango típico del juego.
//
// Con histórico más corto que su ventana más larga no hay base para
// medir momentum: cae al mixto, que a su vez gestiona su propio mínimo.
type MomentumRefinado struct {
	game     domain.Game
	windows  []domain.WindowWeight
	mix      MomentumMix
	short    int
	long     int
	fallback Selector
}

// NewMomentumRefinado crea el método con los parámetros dados.
func NewMomentumRefinado(g domain.Game, p Params, fallback Selector) *MomentumRefinado {
	return &MomentumRefinado{
		game:     g,
		windows:  p.Momentum,
		mix:      p.MomentumMix,
		short:    p.AccelShort,
		long:     p.AccelLong,
		fallback: fallback,
	}
}

func (m *MomentumRefinado) Name() string { return "Momentum Refinado" }

// longestWindow devuelve la ventana más larga que exige el método.
func (m *MomentumRefinado) longestWindow() int {
	longest := m.long
	for _, w := range m.windows {
		if w.Size > longest {
			longest = w.Size
		}
	}
	return longest
}

// WithSeed propaga la semilla al fallback; el momentum es determinista.
func (m *MomentumRefinado) WithSeed(seed int64) Selector {
	if st, ok := m.fallback.(Stochastic); ok {
		cp := *m
		cp.fallback = st.WithSeed(seed)
		return &cp
	}
	return m
}

func (m *MomentumRefinado) Select(h domain.History) domain.Selection {
	if len(h) < m.longestWindow() {
		return m.fallback.Select(h)
	}

	momentum := domain.Normalize(domain.MultiWindowMomentum(h, m.game, m.windows))
	accel := domain.Normalize(domain.AccelerationScore(h, m.game, m.short, m.long))

	scores := make([]float64, m.game.Range)
	for i := range scores {
		scores[i] = m.mix.Momentum*momentum[i] + m.mix.Acceleration*accel[i]
	}

	sel := domain.TopByScore(scores, m.game.Pick)
	return domain.StructuralRefinement(sel, h, m.game)
}
