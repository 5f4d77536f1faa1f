package history

// csv.go — lectura y escritura de los CSV normalizados.
//
// Formato: fecha,n1..nK,complementario,reintegro con cabecera, fechas
// ISO, filas de más reciente a más antigua (el formato heredado de los
// ficheros de origen). El loader invierte a orden cronológico y valida
// todo el histórico: una fila malformada aborta la carga, no se salta.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

const dateLayout = "2006-01-02"

// CSVSource implementa ports.HistorySource sobre un fichero normalizado.
type CSVSource struct {
	path string
}

// NewCSVSource crea la fuente sobre la ruta dada.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// LoadHistory lee el fichero completo, invierte a orden cronológico y
// valida el histórico contra las reglas del juego.
func (s *CSVSource) LoadHistory(_ context.Context, game domain.Game) (domain.History, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("history.LoadHistory: open %q: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = game.Pick + 3 // fecha + números + complementario + reintegro

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("history.LoadHistory: read %q: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("history.LoadHistory: %q is empty", s.path)
	}

	h := make(domain.History, 0, len(rows)-1)
	for i, row := range rows {
		if i == 0 {
			continue // cabecera
		}
		d, err := parseRow(row, game)
		if err != nil {
			return nil, fmt.Errorf("history.LoadHistory: %q row %d: %w", s.path, i+1, err)
		}
		h = append(h, d)
	}

	// De más reciente primero a cronológico ascendente.
	sort.SliceStable(h, func(a, b int) bool { return h[a].Date.Before(h[b].Date) })

	if err := h.Validate(game); err != nil {
		return nil, fmt.Errorf("history.LoadHistory: %q: %w", s.path, err)
	}
	return h, nil
}

// parseRow convierte una fila en Draw. El Validate fino lo hace después
// History.Validate; aquí solo se exige que los campos sean parseables.
func parseRow(row []string, game domain.Game) (domain.Draw, error) {
	date, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return domain.Draw{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	nums := make([]int, game.Pick)
	for i := 0; i < game.Pick; i++ {
		n, err := strconv.Atoi(row[1+i])
		if err != nil {
			return domain.Draw{}, fmt.Errorf("bad number %q: %w", row[1+i], err)
		}
		nums[i] = n
	}
	sort.Ints(nums)

	comp, err := strconv.Atoi(row[1+game.Pick])
	if err != nil {
		return domain.Draw{}, fmt.Errorf("bad complementario %q: %w", row[1+game.Pick], err)
	}
	reint, err := strconv.Atoi(row[2+game.Pick])
	if err != nil {
		return domain.Draw{}, fmt.Errorf("bad reintegro %q: %w", row[2+game.Pick], err)
	}

	return domain.Draw{Date: date, Numbers: nums, Complementario: comp, Reintegro: reint}, nil
}

// WriteCSV guarda el histórico en el formato normalizado, de más
// reciente a más antiguo.
func WriteCSV(path string, game domain.Game, h domain.History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("history.WriteCSV: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, game.Pick+3)
	header = append(header, "fecha")
	for i := 1; i <= game.Pick; i++ {
		header = append(header, fmt.Sprintf("n%d", i))
	}
	header = append(header, "complementario", "reintegro")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("history.WriteCSV: header: %w", err)
	}

	for i := len(h) - 1; i >= 0; i-- {
		d := h[i]
		row := make([]string, 0, game.Pick+3)
		row = append(row, d.Date.Format(dateLayout))
		for _, n := range d.Numbers {
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, strconv.Itoa(d.Complementario), strconv.Itoa(d.Reintegro))
		if err := w.Write(row); err != nil {
			return fmt.Errorf("history.WriteCSV: row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("history.WriteCSV: flush: %w", err)
	}
	return nil
}
