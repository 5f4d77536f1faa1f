package prize

// strategies.go — estrategias de cobertura de reintegro.
//
// Todas juegan la misma cartera de combinaciones (misma cobertura greedy,
// mismo coste por sorteo): la única variable es cómo reparten los
// reintegros entre boletos. Así la comparación de balances es justa.

import (
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

// TicketStrategy genera la cartera de boletos de un sorteo a partir del
// prefijo del histórico.
type TicketStrategy interface {
	Name() string
	Tickets(h domain.History) []domain.Ticket
}

// fallbackReintegros se usa cuando el histórico aún no tiene reintegros
// que contar.
var fallbackReintegros = []int{7, 3, 1}

// base comparte la generación de combinaciones entre estrategias.
type base struct {
	game  domain.Game
	p     Params
	blend *selector.Mixto
}

func (b base) combos(h domain.History) []domain.Selection {
	pool := CandidatePool(h, b.game, b.blend, b.p)
	return GreedyCover(pool, b.game.Pick, b.p.CoverTuple, b.p.CoverMatch, b.p.Tickets)
}

// TopTres concentra la cobertura en los 3 reintegros históricamente más
// frecuentes, repartidos en bloques iguales (5+5+5 con 15 boletos).
type TopTres struct{ base }

// NewTopTres crea la estrategia de 3 reintegros concentrados.
func NewTopTres(g domain.Game, p Params, blend *selector.Mixto) *TopTres {
	return &TopTres{base{game: g, p: p, blend: blend}}
}

func (s *TopTres) Name() string { return "Top3 reintegros (5+5+5)" }

func (s *TopTres) Tickets(h domain.History) []domain.Ticket {
	combos := s.combos(h)
	reints := TopReintegros(h, 3)
	if len(reints) == 0 {
		reints = fallbackReintegros
	}
	total := len(combos)
	tickets := make([]domain.Ticket, 0, total)
	for idx, c := range combos {
		r := reints[(idx*len(reints))/total]
		tickets = append(tickets, domain.Ticket{Numbers: c, Reintegro: r})
	}
	return tickets
}

// CicloDiez reparte la cartera por los 10 reintegros posibles en ciclo:
// garantiza el premio de reintegro en todos los sorteos a cambio de
// diluir la cobertura.
type CicloDiez struct{ base }

// NewCicloDiez crea la estrategia de ciclo 0-9.
func NewCicloDiez(g domain.Game, p Params, blend *selector.Mixto) *CicloDiez {
	return &CicloDiez{base{game: g, p: p, blend: blend}}
}

func (s *CicloDiez) Name() string { return "Ciclo 0-9" }

func (s *CicloDiez) Tickets(h domain.History) []domain.Ticket {
	combos := s.combos(h)
	tickets := make([]domain.Ticket, 0, len(combos))
	for idx, c := range combos {
		tickets = append(tickets, domain.Ticket{Numbers: c, Reintegro: idx % 10})
	}
	return tickets
}

// FrecuenciaIntercalada pondera la cobertura por frecuencia histórica de
// cada dígito: los 5 más frecuentes reciben el doble de boletos que los
// 5 menos frecuentes, intercalados.
type FrecuenciaIntercalada struct{ base }

// NewFrecuenciaIntercalada crea la estrategia ponderada por frecuencia.
func NewFrecuenciaIntercalada(g domain.Game, p Params, blend *selector.Mixto) *FrecuenciaIntercalada {
	return &FrecuenciaIntercalada{base{game: g, p: p, blend: blend}}
}

func (s *FrecuenciaIntercalada) Name() string { return "Frecuencia top5x2+bot5" }

func (s *FrecuenciaIntercalada) Tickets(h domain.History) []domain.Ticket {
	combos := s.combos(h)

	freq := make([]int, 10)
	for _, d := range h {
		freq[d.Reintegro]++
	}
	order := make([]int, 10)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if freq[order[a]] != freq[order[b]] {
			return freq[order[a]] > freq[order[b]]
		}
		return order[a] < order[b]
	})

	// Intercalado top/bottom: [t0,b0,t1,b1,...] — las posiciones pares
	// (top5) acaban recibiendo dos boletos cada una con una cartera de 15.
	interleaved := make([]int, 0, 10)
	for i := 0; i < 5; i++ {
		interleaved = append(interleaved, order[i], order[5+i])
	}

	tickets := make([]domain.Ticket, 0, len(combos))
	for idx, c := range combos {
		r := interleaved[(idx*10)/len(combos)]
		tickets = append(tickets, domain.Ticket{Numbers: c, Reintegro: r})
	}
	return tickets
}

// MejorComboDiezR juega la mejor combinación del greedy con los 10
// reintegros (premio de reintegro asegurado para ella) y completa la
// cartera con las 5 siguientes combinaciones.
type MejorComboDiezR struct{ base }

// NewMejorComboDiezR crea la estrategia de mejor combinación con los 10
// reintegros.
func NewMejorComboDiezR(g domain.Game, p Params, blend *selector.Mixto) *MejorComboDiezR {
	return &MejorComboDiezR{base{game: g, p: p, blend: blend}}
}

func (s *MejorComboDiezR) Name() string { return "Mejor combo x10R + 5" }

func (s *MejorComboDiezR) Tickets(h domain.History) []domain.Ticket {
	combos := s.combos(h)
	if len(combos) == 0 {
		return nil
	}
	best := combos[0]
	rest := combos[1:]
	if len(rest) > 5 {
		rest = rest[:5]
	}

	tickets := make([]domain.Ticket, 0, s.p.Tickets)
	for r := 0; r < 10; r++ {
		tickets = append(tickets, domain.Ticket{Numbers: best, Reintegro: r})
	}
	reints := TopReintegros(h, len(rest))
	for idx, c := range rest {
		r := idx % 10
		if idx < len(reints) {
			r = reints[idx]
		}
		tickets = append(tickets, domain.Ticket{Numbers: c, Reintegro: r})
	}
	return tickets
}

// DosCombosDiezR reparte los 10 reintegros entre las dos mejores
// combinaciones (pares para la primera, impares para la segunda) y
// completa con 5 combinaciones más.
type DosCombosDiezR struct{ base }

// NewDosCombosDiezR crea la estrategia de dos combinaciones con los 10
// reintegros repartidos.
func NewDosCombosDiezR(g domain.Game, p Params, blend *selector.Mixto) *DosCombosDiezR {
	return &DosCombosDiezR{base{game: g, p: p, blend: blend}}
}

func (s *DosCombosDiezR) Name() string { return "2 combos x5R + 5" }

func (s *DosCombosDiezR) Tickets(h domain.History) []domain.Ticket {
	combos := s.combos(h)
	if len(combos) == 0 {
		return nil
	}

	tickets := make([]domain.Ticket, 0, s.p.Tickets)
	for _, r := range []int{0, 2, 4, 6, 8} {
		tickets = append(tickets, domain.Ticket{Numbers: combos[0], Reintegro: r})
	}
	if len(combos) > 1 {
		for _, r := range []int{1, 3, 5, 7, 9} {
			tickets = append(tickets, domain.Ticket{Numbers: combos[1], Reintegro: r})
		}
	}

	rest := combos
	if len(rest) > 2 {
		rest = rest[2:]
	} else {
		rest = nil
	}
	if len(rest) > 5 {
		rest = rest[:5]
	}
	reints := TopReintegros(h, 5)
	for idx, c := range rest {
		r := idx % 10
		if len(reints) > 0 {
			r = reints[idx%len(reints)]
		}
		tickets = append(tickets, domain.Ticket{Numbers: c, Reintegro: r})
	}
	if len(tickets) > s.p.Tickets {
		tickets = tickets[:s.p.Tickets]
	}
	return tickets
}

// DefaultStrategies devuelve las estrategias comparadas por defecto.
func DefaultStrategies(g domain.Game, p Params, blend *selector.Mixto) []TicketStrategy {
	return []TicketStrategy{
		NewTopTres(g, p, blend),
		NewCicloDiez(g, p, blend),
		NewFrecuenciaIntercalada(g, p, blend),
		NewMejorComboDiezR(g, p, blend),
		NewDosCombosDiezR(g, p, blend),
	}
}
