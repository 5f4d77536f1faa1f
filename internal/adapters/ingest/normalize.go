package ingest

// normalize.go — normalización del layout de las hojas públicas.
//
// Formato típico de una fila: SORTEO,FECHA,N1..N6,COMP,REINT con la
// fecha en DD/MM/YYYY o YYYY-MM-DD y columnas extra variables según la
// hoja. Las líneas sin fecha (cabeceras, vacías, notas) se ignoran; una
// fila CON fecha que no aporte la combinación completa es un error y
// aborta el ingest, nunca se descarta en silencio ni se rellena con
// datos inventados.

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

var (
	dateDMY = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateISO = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Normalize convierte el CSV crudo de una hoja en sorteos del juego.
// El resultado NO está ordenado ni deduplicado; eso lo hace el Ingester
// al fusionar varias hojas.
func Normalize(raw string, game domain.Game) ([]domain.Draw, error) {
	var draws []domain.Draw
	for lineNo, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		fields := splitFields(line)
		date, dateCol, ok := findDate(fields)
		if !ok {
			continue // cabecera, línea vacía o nota de la hoja
		}

		d, err := parseDraw(fields, dateCol, date, game)
		if err != nil {
			return nil, fmt.Errorf("ingest.Normalize: line %d: %w", lineNo+1, err)
		}
		draws = append(draws, d)
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("ingest.Normalize: no data rows found")
	}
	return draws, nil
}

// splitFields separa la línea CSV quitando comillas y espacios.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"`))
	}
	return parts
}

// findDate localiza la columna de fecha en cualquiera de los dos formatos.
func findDate(fields []string) (date time.Time, col int, ok bool) {
	for i, f := range fields {
		if m := dateDMY.FindStringSubmatch(f); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), i, true
		}
		if m := dateISO.FindStringSubmatch(f); m != nil {
			t, err := time.Parse("2006-01-02", f)
			if err == nil {
				return t, i, true
			}
		}
	}
	return time.Time{}, -1, false
}

// parseDraw extrae la combinación y los extras a partir de la columna de
// fecha: los Pick números vienen justo después, luego complementario y
// reintegro si la hoja los trae.
func parseDraw(fields []string, dateCol int, date time.Time, game domain.Game) (domain.Draw, error) {
	nums := make([]int, 0, game.Pick)
	col := dateCol + 1
	for ; col < len(fields) && len(nums) < game.Pick; col++ {
		n, err := strconv.Atoi(fields[col])
		if err != nil {
			return domain.Draw{}, fmt.Errorf("bad number %q", fields[col])
		}
		nums = append(nums, n)
	}
	if len(nums) < game.Pick {
		return domain.Draw{}, fmt.Errorf("expected %d numbers, got %d", game.Pick, len(nums))
	}
	sort.Ints(nums)

	comp, reint := 0, 0
	if col < len(fields) {
		if n, err := strconv.Atoi(fields[col]); err == nil {
			comp = n
		}
	}
	if col+1 < len(fields) {
		if n, err := strconv.Atoi(fields[col+1]); err == nil {
			reint = n
		}
	}

	d := domain.Draw{Date: date, Numbers: nums, Complementario: comp, Reintegro: reint}
	if err := d.Validate(game); err != nil {
		return domain.Draw{}, err
	}
	return d, nil
}
