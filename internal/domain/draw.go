package domain

import (
	"fmt"
	"time"
)

// Game define las reglas de un juego: cuántos números se eligen y en qué rango.
// El reintegro es siempre un dígito 0-9, común a todos los juegos que lo tienen.
type Game struct {
	Key   string // identificador corto: "primitiva", "bonoloto", ...
	Name  string // nombre para mostrar
	Pick  int    // números por combinación
	Range int    // números van de 1 a Range
}

// Juegos soportados.
var (
	Primitiva    = Game{Key: "primitiva", Name: "La Primitiva", Pick: 6, Range: 49}
	Bonoloto     = Game{Key: "bonoloto", Name: "Bonoloto", Pick: 6, Range: 49}
	Euromillones = Game{Key: "euromillones", Name: "Euromillones", Pick: 5, Range: 50}
	ElGordo      = Game{Key: "elgordo", Name: "El Gordo de la Primitiva", Pick: 5, Range: 54}
)

var games = map[string]Game{
	Primitiva.Key:    Primitiva,
	Bonoloto.Key:     Bonoloto,
	Euromillones.Key: Euromillones,
	ElGordo.Key:      ElGordo,
}

// GameByKey devuelve el juego registrado bajo esa clave.
func GameByKey(key string) (Game, error) {
	g, ok := games[key]
	if !ok {
		return Game{}, fmt.Errorf("domain.GameByKey: unknown game %q", key)
	}
	return g, nil
}

// ExpectedHits es el valor esperado teórico de aciertos por combinación
// para un selector sin información: Pick × Pick / Range.
// Para Primitiva: 6×6/49 ≈ 0.735. Cualquier método por debajo es ruido.
func (g Game) ExpectedHits() float64 {
	return float64(g.Pick) * float64(g.Pick) / float64(g.Range)
}

// Draw es un sorteo histórico ya normalizado.
type Draw struct {
	Date           time.Time
	Numbers        []int // ordenados ascendente, sin duplicados
	Complementario int   // no lo usa el núcleo de scoring; se conserva del origen
	Reintegro      int   // dígito 0-9
}

// MalformedDrawError indica una fila que no puede aportar la combinación
// esperada. Es fatal para el run: descartarla en silencio sesgaría todas
// las tablas de frecuencia posteriores.
type MalformedDrawError struct {
	Date   time.Time
	Reason string
}

func (e *MalformedDrawError) Error() string {
	return fmt.Sprintf("malformed draw %s: %s", e.Date.Format("2006-01-02"), e.Reason)
}

// Validate comprueba que el sorteo cumple las reglas del juego.
func (d Draw) Validate(g Game) error {
	if len(d.Numbers) != g.Pick {
		return &MalformedDrawError{Date: d.Date, Reason: fmt.Sprintf("expected %d numbers, got %d", g.Pick, len(d.Numbers))}
	}
	seen := make(map[int]bool, g.Pick)
	for _, n := range d.Numbers {
		if n < 1 || n > g.Range {
			return &MalformedDrawError{Date: d.Date, Reason: fmt.Sprintf("number %d out of range [1,%d]", n, g.Range)}
		}
		if seen[n] {
			return &MalformedDrawError{Date: d.Date, Reason: fmt.Sprintf("duplicate number %d", n)}
		}
		seen[n] = true
	}
	if d.Reintegro < 0 || d.Reintegro > 9 {
		return &MalformedDrawError{Date: d.Date, Reason: fmt.Sprintf("reintegro %d out of range [0,9]", d.Reintegro)}
	}
	return nil
}

// History es la secuencia de sorteos en orden cronológico ascendente.
// Una vez validada es inmutable para el run: el backtester solo consume
// prefijos de ella (disciplina walk-forward, nunca mira el futuro).
type History []Draw

// Validate falla rápido ante cualquier sorteo malformado, fecha duplicada
// o desorden cronológico, antes de que arranque ningún backtest.
func (h History) Validate(g Game) error {
	for i, d := range h {
		if err := d.Validate(g); err != nil {
			return fmt.Errorf("domain.History: row %d: %w", i, err)
		}
		if i > 0 && !h[i-1].Date.Before(d.Date) {
			return fmt.Errorf("domain.History: row %d: date %s not after %s",
				i, d.Date.Format("2006-01-02"), h[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Prefix devuelve los primeros n sorteos con capacidad recortada, de forma
// que un append del receptor nunca pueda pisar los sorteos futuros.
func (h History) Prefix(n int) History {
	if n > len(h) {
		n = len(h)
	}
	return h[:n:n]
}

// Selection es una combinación candidata: exactamente Pick números
// distintos dentro del rango, ordenados ascendente.
type Selection []int

// Hits cuenta la intersección con los números del sorteo real.
func (s Selection) Hits(d Draw) int {
	drawn := make(map[int]bool, len(d.Numbers))
	for _, n := range d.Numbers {
		drawn[n] = true
	}
	hits := 0
	for _, n := range s {
		if drawn[n] {
			hits++
		}
	}
	return hits
}

// Sum devuelve la suma de la combinación.
func (s Selection) Sum() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Contains indica si el número forma parte de la combinación.
func (s Selection) Contains(n int) bool {
	for _, v := range s {
		if v == n {
			return true
		}
	}
	return false
}

// Ticket es un boleto jugado: una combinación más su reintegro apostado.
type Ticket struct {
	Numbers   Selection
	Reintegro int
}
