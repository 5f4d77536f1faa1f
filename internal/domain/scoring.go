package domain

import "sort"

// scoring.go — primitivas compartidas por todos los métodos de selección.
//
// Todos los vectores de score son []float64 de longitud Range, indexados
// por número-1. El dominio es pequeño y fijo por juego, así que un array
// denso es más simple y más rápido que un mapa disperso.

// normEpsilon evita la división por cero al normalizar un vector con
// todos los valores iguales (caso degenerado).
const normEpsilon = 0.001

// FrequencyTable cuenta las apariciones de cada número en el tramo dado.
// Índice = número - 1.
func FrequencyTable(draws []Draw, g Game) []int {
	freq := make([]int, g.Range)
	for _, d := range draws {
		for _, n := range d.Numbers {
			freq[n-1]++
		}
	}
	return freq
}

// RecencyWindow devuelve los últimos window sorteos, o todo el histórico
// si es más corto.
func RecencyWindow(h History, window int) History {
	if window >= len(h) {
		return h
	}
	return h[len(h)-window:]
}

// OverdueScore devuelve, por número, cuántos sorteos lleva sin salir.
// Un número que nunca ha salido puntúa len(h): máximamente "debido".
func OverdueScore(h History, g Game) []float64 {
	lastSeen := make([]int, g.Range)
	for i := range lastSeen {
		lastSeen[i] = -1
	}
	for i, d := range h {
		for _, n := range d.Numbers {
			lastSeen[n-1] = i
		}
	}
	scores := make([]float64, g.Range)
	for i := range scores {
		scores[i] = float64(len(h) - 1 - lastSeen[i])
	}
	return scores
}

// WindowWeight es una ventana de sorteos con su peso en la combinación.
// Los pesos de un conjunto de ventanas deben sumar 1.0.
type WindowWeight struct {
	Size   int
	Weight float64
}

// MultiWindowMomentum combina, por número, el ratio frecuencia observada /
// frecuencia esperada bajo azar uniforme en cada ventana, ponderado por
// los pesos dados. Ratio > 1 = el número sale más de lo que tocaría.
func MultiWindowMomentum(h History, g Game, windows []WindowWeight) []float64 {
	scores := make([]float64, g.Range)
	for _, w := range windows {
		size := w.Size
		if size > len(h) {
			size = len(h)
		}
		if size == 0 {
			continue
		}
		freq := FrequencyTable(RecencyWindow(h, size), g)
		expected := float64(size) * float64(g.Pick) / float64(g.Range)
		for i := range scores {
			scores[i] += w.Weight * float64(freq[i]) / expected
		}
	}
	return scores
}

// AccelerationScore compara la frecuencia en la ventana corta con la que
// extrapolaría la ventana larga: captura números calentándose por encima
// de su propia base histórica. Devuelve ceros si el histórico no cubre
// la ventana larga.
func AccelerationScore(h History, g Game, short, long int) []float64 {
	scores := make([]float64, g.Range)
	if long <= 0 || short <= 0 || len(h) < long {
		return scores
	}
	shortFreq := FrequencyTable(RecencyWindow(h, short), g)
	longFreq := FrequencyTable(RecencyWindow(h, long), g)
	for i := range scores {
		expected := float64(longFreq[i]) * float64(short) / float64(long)
		if expected <= 0 {
			continue // sin base en la ventana larga no hay aceleración medible
		}
		scores[i] = float64(shortFreq[i]) / expected
	}
	return scores
}

// Normalize reescala el vector a [0,1] con min-max. El caso degenerado
// (todos iguales) devuelve ceros en lugar de dividir por cero.
func Normalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	mn, mx := scores[0], scores[0]
	for _, v := range scores {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	r := mx - mn
	if r < normEpsilon {
		r = normEpsilon
	}
	for i, v := range scores {
		out[i] = (v - mn) / r
	}
	return out
}

// PairCounts cuenta la co-ocurrencia de cada par no ordenado de números
// a lo largo del histórico. La clave es [menor, mayor].
func PairCounts(h History) map[[2]int]int {
	pairs := make(map[[2]int]int)
	for _, d := range h {
		nums := d.Numbers
		for i := 0; i < len(nums); i++ {
			for j := i + 1; j < len(nums); j++ {
				a, b := nums[i], nums[j]
				if a > b {
					a, b = b, a
				}
				pairs[[2]int{a, b}]++
			}
		}
	}
	return pairs
}

// TopByScore devuelve los k números con mayor score. Empates se resuelven
// por valor numérico ascendente, para que el resultado sea determinista.
func TopByScore(scores []float64, k int) Selection {
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
	if k > len(order) {
		k = len(order)
	}
	sel := make(Selection, k)
	copy(sel, order[:k])
	sort.Ints(sel)
	return sel
}

// BottomByScore devuelve los k números con menor score, empates por valor
// ascendente.
func BottomByScore(scores []float64, k int) Selection {
	inverted := make([]float64, len(scores))
	for i, v := range scores {
		inverted[i] = -v
	}
	return TopByScore(inverted, k)
}

// TypicalSumRange devuelve el intervalo de sumas "típicas" del juego,
// derivado de su combinatoria: media ± un tercio de la media.
// Para 6 de 49 la suma media es 150 y el intervalo [100,200].
func TypicalSumRange(g Game) (lo, hi int) {
	mean := g.Pick * (g.Range + 1) / 2
	return mean - mean/3, mean + mean/3
}

// StructuralRefinement mantiene la suma de la combinación dentro del
// rango típico del juego. Si se sale, cambia el extremo (máximo si la
// suma es alta, mínimo si es baja) por un número no usado del lado
// correcto de la mitad del rango, eligiendo el de mayor frecuencia
// histórica. Como mucho un intercambio; nunca cambia el tamaño.
func StructuralRefinement(sel Selection, h History, g Game) Selection {
	out := make(Selection, len(sel))
	copy(out, sel)
	if len(out) == 0 {
		return out
	}

	lo, hi := TypicalSumRange(g)
	sum := out.Sum()
	if sum >= lo && sum <= hi {
		return out
	}

	freq := FrequencyTable(h, g)
	mid := g.Range / 2
	sort.Ints(out)

	// Suma alta: sacar el máximo y meter un número bajo. Suma baja: al revés.
	var victimIdx int
	var wants func(n int) bool
	if sum > hi {
		victimIdx = len(out) - 1
		wants = func(n int) bool { return n <= mid }
	} else {
		victimIdx = 0
		wants = func(n int) bool { return n > mid }
	}

	best, bestFreq := 0, -1
	for n := 1; n <= g.Range; n++ {
		if !wants(n) || out.Contains(n) {
			continue
		}
		if freq[n-1] > bestFreq {
			best, bestFreq = n, freq[n-1]
		}
	}
	if best == 0 {
		return out // no hay candidato en ese lado; se queda como está
	}

	out[victimIdx] = best
	sort.Ints(out)
	return out
}
