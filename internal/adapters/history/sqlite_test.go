package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	a, err := NewSQLiteArchive(":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

// --- SaveDraws / LoadHistory ---

func TestArchive_SaveAndLoadRoundTrip(t *testing.T) {
	a := newTestArchive(t)
	g := domain.Primitiva
	h := sampleHistory(15)

	added, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)
	assert.Equal(t, 15, added)

	loaded, err := a.LoadHistory(context.Background(), g)
	assert.NoError(t, err)
	assert.Equal(t, h, loaded)
}

func TestArchive_UpsertIsIdempotent(t *testing.T) {
	a := newTestArchive(t)
	g := domain.Primitiva
	h := sampleHistory(10)

	_, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)

	// La segunda descarga del mismo histórico no añade filas.
	added, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)
	assert.Equal(t, 0, added)

	loaded, err := a.LoadHistory(context.Background(), g)
	assert.NoError(t, err)
	assert.Len(t, loaded, 10)
}

func TestArchive_UpsertReplacesChangedDraw(t *testing.T) {
	a := newTestArchive(t)
	g := domain.Primitiva
	h := sampleHistory(1)

	_, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)

	h[0].Numbers = []int{7, 8, 9, 10, 11, 12}
	added, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)
	assert.Equal(t, 0, added)

	loaded, err := a.LoadHistory(context.Background(), g)
	assert.NoError(t, err)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, loaded[0].Numbers)
}

func TestArchive_DateColumnRoundTrip(t *testing.T) {
	// La columna fecha es DATE: el driver la devuelve como time.Time,
	// así que el escaneo va directo sobre time.Time. Leerla como string
	// daría RFC3339 y rompería cada lectura del archivo.
	a := newTestArchive(t)
	g := domain.Primitiva
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	h := domain.History{
		{Date: base, Numbers: []int{1, 2, 3, 4, 5, 6}, Reintegro: 7},
	}

	_, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)

	loaded, err := a.LoadHistory(context.Background(), g)
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.True(t, loaded[0].Date.Equal(base))
	assert.Equal(t, "2024-03-15", loaded[0].Date.Format("2006-01-02"))
}

func TestArchive_GamesDoNotMix(t *testing.T) {
	a := newTestArchive(t)
	h := sampleHistory(5)

	_, err := a.SaveDraws(context.Background(), domain.Primitiva, h)
	assert.NoError(t, err)
	_, err = a.SaveDraws(context.Background(), domain.Bonoloto, h[:2])
	assert.NoError(t, err)

	prim, _ := a.LoadHistory(context.Background(), domain.Primitiva)
	bono, _ := a.LoadHistory(context.Background(), domain.Bonoloto)
	assert.Len(t, prim, 5)
	assert.Len(t, bono, 2)
}

func TestArchive_FivePickGamePadsSixthColumn(t *testing.T) {
	a := newTestArchive(t)
	g := domain.Euromillones
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := domain.History{
		{Date: base, Numbers: []int{3, 14, 27, 41, 50}, Reintegro: 2},
	}

	_, err := a.SaveDraws(context.Background(), g, h)
	assert.NoError(t, err)

	loaded, err := a.LoadHistory(context.Background(), g)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 14, 27, 41, 50}, loaded[0].Numbers)
}

func TestArchive_RejectsMalformedDraw(t *testing.T) {
	a := newTestArchive(t)
	g := domain.Primitiva
	h := domain.History{
		{Date: time.Now(), Numbers: []int{1, 2, 3}},
	}
	_, err := a.SaveDraws(context.Background(), g, h)
	assert.Error(t, err)
}

func TestArchive_LoadEmptyGame(t *testing.T) {
	a := newTestArchive(t)
	h, err := a.LoadHistory(context.Background(), domain.Primitiva)
	assert.NoError(t, err)
	assert.Empty(t, h)
}

// --- SaveRun ---

func TestArchive_SaveRun(t *testing.T) {
	a := newTestArchive(t)
	run := domain.RunSummary{
		ID:          uuid.NewString(),
		Game:        "primitiva",
		Method:      "Mixto 15/70/15",
		RanAt:       time.Now().UTC(),
		Evaluations: 300,
		MeanHits:    0.812,
		PctAtLeast3: 3.3,
		PctAtLeast4: 0.4,
		Baseline:    0.735,
	}
	assert.NoError(t, a.SaveRun(context.Background(), run))

	// El id es clave primaria: el mismo run no entra dos veces.
	assert.Error(t, a.SaveRun(context.Background(), run))
}
