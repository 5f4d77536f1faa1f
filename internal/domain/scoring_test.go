package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func draw(n int, nums ...int) Draw {
	return Draw{Date: day(n), Numbers: nums, Reintegro: n % 10}
}

// --- FrequencyTable ---

func TestFrequencyTable_Counts(t *testing.T) {
	h := History{
		draw(0, 1, 2, 3, 4, 5, 6),
		draw(1, 1, 2, 10, 20, 30, 40),
	}
	freq := FrequencyTable(h, Primitiva)

	assert.Len(t, freq, 49)
	assert.Equal(t, 2, freq[0])  // el 1 salió dos veces
	assert.Equal(t, 1, freq[9])  // el 10 una vez
	assert.Equal(t, 0, freq[48]) // el 49 nunca
}

func TestFrequencyTable_EmptyHistory(t *testing.T) {
	freq := FrequencyTable(nil, Primitiva)
	for _, f := range freq {
		assert.Equal(t, 0, f)
	}
}

// --- RecencyWindow ---

func TestRecencyWindow_ShorterHistory(t *testing.T) {
	h := History{draw(0, 1, 2, 3, 4, 5, 6)}
	assert.Len(t, RecencyWindow(h, 12), 1)
}

func TestRecencyWindow_TakesTail(t *testing.T) {
	h := History{
		draw(0, 1, 2, 3, 4, 5, 6),
		draw(1, 7, 8, 9, 10, 11, 12),
		draw(2, 13, 14, 15, 16, 17, 18),
	}
	w := RecencyWindow(h, 2)
	assert.Len(t, w, 2)
	assert.Equal(t, day(1), w[0].Date)
}

// --- OverdueScore ---

func TestOverdueScore_NeverSeenIsMax(t *testing.T) {
	h := History{
		draw(0, 1, 2, 3, 4, 5, 6),
		draw(1, 1, 2, 3, 4, 5, 6),
	}
	scores := OverdueScore(h, Primitiva)

	// El 49 nunca ha salido: lleva len(h) sorteos "debido".
	assert.Equal(t, float64(len(h)), scores[48])
	// El 1 salió en el último sorteo: cero sorteos sin salir.
	assert.Equal(t, 0.0, scores[0])
}

// --- MultiWindowMomentum ---

func TestMultiWindowMomentum_UniformIsFlat(t *testing.T) {
	// Cada número del 1 al 49 aparece exactamente una vez por "vuelta":
	// el ratio observado/esperado es igual para todos.
	var h History
	n := 0
	for i := 0; i < 49; i += 6 {
		nums := make([]int, 0, 6)
		for j := 0; j < 6; j++ {
			nums = append(nums, (i+j)%49+1)
		}
		h = append(h, draw(n, dedupe(nums)...))
		n++
	}
	scores := MultiWindowMomentum(h, Primitiva, []WindowWeight{{Size: len(h), Weight: 1.0}})
	assert.Len(t, scores, 49)
	for _, s := range scores {
		assert.Greater(t, s, 0.0)
	}
}

func TestMultiWindowMomentum_WindowShrinksToHistory(t *testing.T) {
	h := History{draw(0, 1, 2, 3, 4, 5, 6)}
	scores := MultiWindowMomentum(h, Primitiva, []WindowWeight{{Size: 100, Weight: 1.0}})
	// Con una ventana más grande que el histórico no debe explotar ni dar NaN.
	assert.Greater(t, scores[0], 0.0)
}

func dedupe(nums []int) []int {
	seen := make(map[int]bool)
	out := nums[:0]
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// --- AccelerationScore ---

func TestAccelerationScore_ShortHistoryIsZero(t *testing.T) {
	h := History{draw(0, 1, 2, 3, 4, 5, 6)}
	scores := AccelerationScore(h, Primitiva, 10, 50)
	for _, s := range scores {
		assert.Equal(t, 0.0, s)
	}
}

func TestAccelerationScore_HeatingNumberScoresHigh(t *testing.T) {
	// El 7 solo aparece en los últimos 10 sorteos: acelera sobre su base.
	var h History
	for i := 0; i < 40; i++ {
		h = append(h, draw(i, 10, 20, 30, 40, 45, 49))
	}
	for i := 40; i < 50; i++ {
		h = append(h, draw(i, 7, 20, 30, 40, 45, 49))
	}
	scores := AccelerationScore(h, Primitiva, 10, 50)

	// El 7: base larga 10/50, corta 10/10 → ratio 5. El 20: estable, ratio 1.
	assert.Greater(t, scores[6], scores[19])
	assert.InDelta(t, 1.0, scores[19], 0.001)
}

// --- Normalize ---

func TestNormalize_Bounds(t *testing.T) {
	out := Normalize([]float64{3, 1, 2})
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 0.0, out[1])
	assert.InDelta(t, 0.5, out[2], 0.001)
}

func TestNormalize_AllEqualIsZeros(t *testing.T) {
	out := Normalize([]float64{5, 5, 5})
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
}

// --- PairCounts ---

func TestPairCounts_UnorderedKey(t *testing.T) {
	h := History{
		draw(0, 1, 2, 3, 4, 5, 6),
		draw(1, 2, 1, 10, 20, 30, 40),
	}
	pairs := PairCounts(h)
	assert.Equal(t, 2, pairs[[2]int{1, 2}])
	assert.Equal(t, 1, pairs[[2]int{1, 6}])
	assert.Equal(t, 0, pairs[[2]int{6, 1}]) // solo existe la clave ordenada
}

// --- TopByScore / BottomByScore ---

func TestTopByScore_TiesByValue(t *testing.T) {
	scores := make([]float64, 49)
	scores[9] = 1.0 // el 10
	scores[4] = 1.0 // el 5
	sel := TopByScore(scores, 3)

	// Empate en el resto a score 0: gana el número más bajo (el 1).
	assert.Equal(t, Selection{1, 5, 10}, sel)
}

func TestTopByScore_ClampsK(t *testing.T) {
	sel := TopByScore([]float64{1, 2}, 10)
	assert.Len(t, sel, 2)
}

func TestBottomByScore_PicksLowest(t *testing.T) {
	scores := make([]float64, 49)
	for i := range scores {
		scores[i] = float64(i)
	}
	sel := BottomByScore(scores, 6)
	assert.Equal(t, Selection{1, 2, 3, 4, 5, 6}, sel)
}

// --- TypicalSumRange / StructuralRefinement ---

func TestTypicalSumRange_Primitiva(t *testing.T) {
	lo, hi := TypicalSumRange(Primitiva)
	assert.Equal(t, 100, lo)
	assert.Equal(t, 200, hi)
}

func TestStructuralRefinement_InRangeUntouched(t *testing.T) {
	h := History{draw(0, 1, 2, 3, 4, 5, 6)}
	sel := Selection{10, 20, 25, 30, 35, 40} // suma 160
	out := StructuralRefinement(sel, h, Primitiva)
	assert.Equal(t, sel, out)
}

func TestStructuralRefinement_HighSumSwapsMax(t *testing.T) {
	h := History{
		draw(0, 3, 10, 20, 30, 40, 49),
		draw(1, 3, 11, 21, 31, 41, 48),
	}
	sel := Selection{40, 44, 45, 46, 47, 49} // suma 271, muy alta
	out := StructuralRefinement(sel, h, Primitiva)

	assert.Len(t, out, 6)
	assert.NotContains(t, out, 49) // la víctima es el máximo
	// Entra el número bajo (<=24) con más frecuencia: el 3.
	assert.Contains(t, out, 3)
	// Un único intercambio: los otros cinco sobreviven.
	for _, n := range []int{40, 44, 45, 46, 47} {
		assert.Contains(t, out, n)
	}
}

func TestStructuralRefinement_LowSumSwapsMin(t *testing.T) {
	h := History{draw(0, 30, 35, 40, 44, 48, 49)}
	sel := Selection{1, 2, 3, 4, 5, 6} // suma 21, muy baja
	out := StructuralRefinement(sel, h, Primitiva)

	assert.Len(t, out, 6)
	assert.NotContains(t, out, 1)
	// Entra un número alto (>24); el de mayor frecuencia.
	assert.Contains(t, out, 30)
}

func TestStructuralRefinement_DoesNotMutateInput(t *testing.T) {
	h := History{draw(0, 1, 2, 3, 4, 5, 6)}
	sel := Selection{44, 45, 46, 47, 48, 49}
	_ = StructuralRefinement(sel, h, Primitiva)
	assert.Equal(t, Selection{44, 45, 46, 47, 48, 49}, sel)
}

// --- ExpectedHits ---

func TestExpectedHits_Primitiva(t *testing.T) {
	assert.InDelta(t, 0.735, Primitiva.ExpectedHits(), 0.001)
}

func TestExpectedHits_Euromillones(t *testing.T) {
	assert.InDelta(t, 0.5, Euromillones.ExpectedHits(), 0.001)
}
