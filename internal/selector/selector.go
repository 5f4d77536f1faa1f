package selector

import (
	"fmt"
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// Selector es el contrato de todo método de selección: dado un prefijo
// del histórico devuelve una combinación válida del juego. Los métodos
// con requisito mínimo de histórico resuelven el fallback internamente;
// el backtester siempre recibe una Selection válida.
type Selector interface {
	Name() string
	Select(h domain.History) domain.Selection
}

// Stochastic lo implementan los métodos con azar. WithSeed devuelve una
// copia con el generador sembrado: el backtester deriva una semilla por
// paso y así el resultado es reproducible e idéntico con o sin workers.
type Stochastic interface {
	WithSeed(seed int64) Selector
}

// ranker es la cara interna de los métodos basados en score: un orden
// completo de los números, de mejor a peor. Lo consumen el ensemble y
// el consenso para pedir listas de candidatos más largas que Pick.
type ranker interface {
	rank(h domain.History) []int
}

// rankByScore ordena 1..Range por score descendente, empates por valor
// ascendente.
func rankByScore(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i + 1
	}
	sort.Slice(order, func(a, b int) bool {
		sa, sb := scores[order[a]-1], scores[order[b]-1]
		if sa != sb {
			return sa > sb
		}
		return order[a] < order[b]
	})
	return order
}

// Params agrupa la configuración compartida de los métodos.
type Params struct {
	HotWindow    int                   // ventana de "calientes" (def. 12)
	MinHistory   int                   // mínimo para el mixto (def. 10)
	Blend        BlendWeights          // pesos del mixto
	Momentum     []domain.WindowWeight // ventanas del momentum multi-ventana
	MomentumMix  MomentumMix           // pesos momentum/aceleración
	AccelShort   int                   // ventana corta de aceleración
	AccelLong    int                   // ventana larga de aceleración
	Seed         int64                 // semilla del baseline aleatorio
	EnsembleSize int                   // candidatos por votante (def. 15)
	ConsensusSet int                   // tamaño de set por votante (def. 12)
	ConsensusMin int                   // participación mínima (def. 2)
}

// BlendWeights son los pesos del método mixto. Deben sumar 1.
type BlendWeights struct {
	Frequency float64
	Recent    float64
	Overdue   float64
}

// Validate comprueba que los pesos forman una combinación convexa.
func (w BlendWeights) Validate() error {
	sum := w.Frequency + w.Recent + w.Overdue
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("selector.BlendWeights: weights sum %.3f, want 1.0", sum)
	}
	if w.Frequency < 0 || w.Recent < 0 || w.Overdue < 0 {
		return fmt.Errorf("selector.BlendWeights: negative weight")
	}
	return nil
}

// validateMomentumWindows comprueba que los pesos de las ventanas forman
// una combinación convexa, igual que los del mixto: un peso de más
// sesgaría el momentum multi-ventana sin avisar.
func validateMomentumWindows(windows []domain.WindowWeight) error {
	if len(windows) == 0 {
		return fmt.Errorf("selector: no momentum windows configured")
	}
	sum := 0.0
	for _, w := range windows {
		if w.Size <= 0 {
			return fmt.Errorf("selector: momentum window size %d, want > 0", w.Size)
		}
		if w.Weight < 0 {
			return fmt.Errorf("selector: negative momentum window weight %.3f", w.Weight)
		}
		sum += w.Weight
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("selector: momentum window weights sum %.3f, want 1.0", sum)
	}
	return nil
}

// MomentumMix reparte el score del momentum refinado entre el momentum
// multi-ventana y la aceleración. Deben sumar 1.
type MomentumMix struct {
	Momentum     float64
	Acceleration float64
}

// Validate comprueba los pesos del momentum refinado.
func (m MomentumMix) Validate() error {
	sum := m.Momentum + m.Acceleration
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("selector.MomentumMix: weights sum %.3f, want 1.0", sum)
	}
	return nil
}

// DefaultParams devuelve la configuración de referencia: el mixto
// 15/70/15 con ventana 12, momentum 10/30/100 y mezcla 70/30.
func DefaultParams() Params {
	return Params{
		HotWindow:  12,
		MinHistory: 10,
		Blend:      BlendWeights{Frequency: 0.15, Recent: 0.70, Overdue: 0.15},
		Momentum: []domain.WindowWeight{
			{Size: 10, Weight: 0.5},
			{Size: 30, Weight: 0.3},
			{Size: 100, Weight: 0.2},
		},
		MomentumMix:  MomentumMix{Momentum: 0.7, Acceleration: 0.3},
		AccelShort:   10,
		AccelLong:    50,
		Seed:         1,
		EnsembleSize: 15,
		ConsensusSet: 12,
		ConsensusMin: 2,
	}
}

// Registry contiene los métodos registrados para un juego, en orden de
// registro estable para que los informes salgan siempre igual.
type Registry struct {
	order  []string
	byName map[string]Selector
}

// NewRegistry construye el registro completo de métodos para el juego.
func NewRegistry(g domain.Game, p Params) (*Registry, error) {
	if err := p.Blend.Validate(); err != nil {
		return nil, err
	}
	if err := p.MomentumMix.Validate(); err != nil {
		return nil, err
	}
	if err := validateMomentumWindows(p.Momentum); err != nil {
		return nil, err
	}

	random := NewAleatorio(g, p.Seed)
	freq := NewFrecuencias(g)
	hot := NewCalientes(g, p.HotWindow)
	overdue := NewDebidos(g)
	blend := NewMixto(g, p.Blend, p.HotWindow, p.MinHistory, random)

	r := &Registry{byName: make(map[string]Selector)}
	r.add(random)
	r.add(freq)
	r.add(NewFrios(g))
	r.add(overdue)
	r.add(hot)
	r.add(blend)
	r.add(NewPares(g))
	r.add(NewEnsemble(g, p.EnsembleSize, freq, hot, overdue, blend))
	r.add(NewConsenso(g, p.ConsensusSet, p.ConsensusMin, freq, hot, overdue, blend))
	r.add(NewMomentumRefinado(g, p, blend))
	return r, nil
}

func (r *Registry) add(s Selector) {
	r.order = append(r.order, s.Name())
	r.byName[s.Name()] = s
}

// Get devuelve el método con ese nombre.
func (r *Registry) Get(name string) (Selector, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names devuelve los nombres en orden de registro.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All devuelve todos los métodos en orden de registro.
func (r *Registry) All() []Selector {
	out := make([]Selector, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
