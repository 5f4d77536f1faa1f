package prize

// tickets.go — generación del pool de candidatos y de las combinaciones
// base que comparten todas las estrategias de cobertura.
//
// El pool son los 17 números mejor puntuados por el mixto, intercalando
// mitad baja y mitad alta del rango para no concentrar la suma. Sobre el
// pool, una cobertura greedy 3-de-6 elige hasta 15 combinaciones que
// maximizan los tríos cubiertos: si salen 3 números del pool, alguna
// combinación lleva los tres.

import (
	"math/bits"
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

// Params controla la generación de boletos.
type Params struct {
	Tickets    int // boletos por sorteo (tamaño fijo de cartera)
	Candidates int // tamaño del pool de candidatos
	CoverTuple int // tamaño del subconjunto a cubrir (t)
	CoverMatch int // aciertos dentro del boleto que cuentan como cubierto (m)
	MinHistory int // por debajo, el pool es simplemente 1..Candidates
}

// DefaultParams devuelve la configuración de referencia: cartera de 15
// boletos sobre 17 candidatos con cobertura de tríos.
func DefaultParams() Params {
	return Params{Tickets: 15, Candidates: 17, CoverTuple: 3, CoverMatch: 3, MinHistory: 30}
}

// CandidatePool devuelve los mejores Candidates números según el score
// del mixto, intercalados entre mitad baja y mitad alta del rango.
// Con histórico corto no hay señal: devuelve 1..Candidates.
func CandidatePool(h domain.History, g domain.Game, blend *selector.Mixto, p Params) []int {
	if len(h) < p.MinHistory {
		pool := make([]int, p.Candidates)
		for i := range pool {
			pool[i] = i + 1
		}
		return pool
	}

	scores := blend.Scores(h)
	order := make([]int, g.Range)
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

	mid := g.Range / 2
	var low, high []int
	for _, n := range order {
		if n <= mid {
			low = append(low, n)
		} else {
			high = append(high, n)
		}
	}

	// Intercalado: se avanza por la lista que menos números ha aportado,
	// con preferencia por la mitad baja en empate.
	pool := make([]int, 0, p.Candidates)
	il, ih := 0, 0
	for len(pool) < p.Candidates {
		switch {
		case il < len(low) && (ih >= len(high) || il <= ih):
			pool = append(pool, low[il])
			il++
		case ih < len(high):
			pool = append(pool, high[ih])
			ih++
		default:
			return pool
		}
	}
	return pool
}

// GreedyCover elige hasta maxTickets combinaciones de pick números del
// pool, maximizando en cada paso los subconjuntos de tamaño t aún no
// cubiertos (cubierto = al menos m de sus números caen en el boleto).
func GreedyCover(cands []int, pick, t, m, maxTickets int) []domain.Selection {
	cands = append([]int(nil), cands...)
	sort.Ints(cands)
	if len(cands) < pick {
		return nil
	}

	combos := combinations(cands, pick)
	subsets := combinations(cands, t)

	// Máscaras de bits sobre los números: popcount hace el overlap barato.
	comboMasks := make([]uint64, len(combos))
	for i, c := range combos {
		comboMasks[i] = mask(c)
	}

	// Subconjuntos cubiertos por cada combo. Con m == t un subconjunto
	// cubierto es exactamente un subconjunto del propio combo, así que se
	// enumeran directo sin escanear los 680 tríos del pool.
	covered := make([][]uint64, len(combos))
	if m == t {
		for i, c := range combos {
			for _, sub := range combinations(c, t) {
				covered[i] = append(covered[i], mask(sub))
			}
		}
	} else {
		subsetMasks := make([]uint64, len(subsets))
		for i, s := range subsets {
			subsetMasks[i] = mask(s)
		}
		for i := range combos {
			for _, sm := range subsetMasks {
				if bits.OnesCount64(comboMasks[i]&sm) >= m {
					covered[i] = append(covered[i], sm)
				}
			}
		}
	}

	uncovered := make(map[uint64]bool, len(subsets))
	for _, s := range subsets {
		uncovered[mask(s)] = true
	}

	used := make([]bool, len(combos))
	var chosen []domain.Selection
	for len(uncovered) > 0 && len(chosen) < maxTickets {
		bestIdx, bestGain := -1, 0
		for i := range combos {
			if used[i] {
				continue
			}
			gain := 0
			for _, sm := range covered[i] {
				if uncovered[sm] {
					gain++
				}
			}
			if gain > bestGain {
				bestIdx, bestGain = i, gain
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		for _, sm := range covered[bestIdx] {
			delete(uncovered, sm)
		}
		sel := make(domain.Selection, pick)
		copy(sel, combos[bestIdx])
		chosen = append(chosen, sel)
	}
	return chosen
}

// TopReintegros devuelve los n dígitos de reintegro más frecuentes del
// histórico, empates por dígito ascendente.
func TopReintegros(h domain.History, n int) []int {
	if len(h) == 0 {
		return nil
	}
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
	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

// combinations genera todos los subconjuntos de tamaño k en orden
// lexicográfico.
func combinations(nums []int, k int) [][]int {
	var out [][]int
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			out = append(out, append([]int(nil), combo...))
			return
		}
		for i := start; i <= len(nums)-(k-depth); i++ {
			combo[depth] = nums[i]
			rec(i+1, depth+1)
		}
	}
	if k > 0 && k <= len(nums) {
		rec(0, 0)
	}
	return out
}

// mask codifica un conjunto de números 1..63 como bitmask.
func mask(nums []int) uint64 {
	var m uint64
	for _, n := range nums {
		m |= 1 << uint(n)
	}
	return m
}
