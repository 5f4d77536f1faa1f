package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HCTop/LoteriaProbabilidad/internal/backtest"
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/prize"
)

func sampleResults() []backtest.Result {
	return []backtest.Result{
		{
			Method:      "Aleatorio Puro",
			Histogram:   []int{120, 110, 50, 15, 4, 1, 0},
			Evaluated:   300,
			MeanHits:    0.72,
			PctAtLeast3: 6.7,
			PctAtLeast4: 1.7,
			Baseline:    0.735,
		},
		{
			Method:      "Mixto 15/70/15",
			Histogram:   []int{110, 115, 55, 15, 4, 1, 0},
			Evaluated:   300,
			MeanHits:    0.81,
			PctAtLeast3: 6.7,
			PctAtLeast4: 1.7,
			Baseline:    0.735,
		},
	}
}

func TestPrintBacktest_TableAndRanking(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	c.PrintBacktest(domain.Primitiva, sampleResults())
	out := buf.String()

	assert.Contains(t, out, "BACKTEST LA PRIMITIVA")
	assert.Contains(t, out, "Aleatorio Puro")
	assert.Contains(t, out, "Mixto 15/70/15")
	assert.Contains(t, out, "MEDIA")
	assert.Contains(t, out, "0.735") // baseline en la nota
	assert.Contains(t, out, "RANKING")

	// El mixto supera el baseline: lleva la marca; el aleatorio no.
	assert.Contains(t, out, "* Mixto 15/70/15")
	// Y va primero en el ranking por media.
	mixtoIdx := strings.Index(out[strings.Index(out, "RANKING"):], "Mixto")
	randomIdx := strings.Index(out[strings.Index(out, "RANKING"):], "Aleatorio")
	assert.Less(t, mixtoIdx, randomIdx)
}

func TestPrintBacktest_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).PrintBacktest(domain.Primitiva, nil)
	assert.Contains(t, buf.String(), "Sin resultados")
}

func TestPrintPrize_TableWithBalances(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf)

	results := []prize.StrategyResult{
		{
			Strategy:   "Ciclo 0-9",
			Draws:      100,
			Spent:      1500,
			Won:        230,
			Balance:    -1270,
			Categories: map[string]int{"3": 20, "R": 150},
		},
	}
	c.PrintPrize(domain.Primitiva, results)
	out := buf.String()

	assert.Contains(t, out, "SIMULACION DE PREMIOS")
	assert.Contains(t, out, "Ciclo 0-9")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "-1270")
	assert.Contains(t, out, "R:150")
	assert.Contains(t, out, "3:20")
}

func TestPrintPrize_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).PrintPrize(domain.Primitiva, nil)
	assert.Contains(t, buf.String(), "Sin resultados")
}

func TestPrintIngest(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).PrintIngest(domain.Primitiva, 4500, 12)
	out := buf.String()
	assert.Contains(t, out, "La Primitiva")
	assert.Contains(t, out, "4500")
	assert.Contains(t, out, "12 nuevos")
}
