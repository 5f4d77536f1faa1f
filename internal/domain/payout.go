package domain

// payout.go — tabla de premios por categoría.
//
// Los importes de las categorías no-bote son configuración, no verdad
// absoluta: el valor real de 3ª y 4ª categoría varía por sorteo. Los
// botes (6 y 6+R) se marcan Jackpot y simulan a 0€ — inventarles un
// importe falsearía el balance.

// PayoutTier es una categoría de premio: qué combinación de aciertos la
// gana y cuánto paga en la simulación.
type PayoutTier struct {
	Category  string  // "6+R", "6", "5+R", "5", "4", "3", "R"
	Hits      int     // aciertos de números principales requeridos
	Reintegro bool    // si además exige acertar el reintegro
	Value     float64 // importe fijo simulado en euros
	Jackpot   bool    // bote variable: se cuenta pero vale 0
}

// PayoutTable son las categorías de un juego, ordenadas de mejor a peor.
type PayoutTable []PayoutTier

// DefaultPrimitivaPayouts devuelve la tabla de la Primitiva con los
// importes aproximados de las categorías fijas.
func DefaultPrimitivaPayouts() PayoutTable {
	return PayoutTable{
		{Category: "6+R", Hits: 6, Reintegro: true, Value: 0, Jackpot: true},
		{Category: "6", Hits: 6, Reintegro: false, Value: 0, Jackpot: true},
		{Category: "5+R", Hits: 5, Reintegro: true, Value: 20000},
		{Category: "5", Hits: 5, Reintegro: false, Value: 1500},
		{Category: "4", Hits: 4, Reintegro: false, Value: 48},
		{Category: "3", Hits: 3, Reintegro: false, Value: 8},
		{Category: "R", Hits: 0, Reintegro: true, Value: 1},
	}
}

// Match devuelve la mejor categoría que un boleto alcanza con esos
// aciertos y ese reintegro. ok=false si no gana nada.
func (t PayoutTable) Match(hits int, reintegro bool) (tier PayoutTier, ok bool) {
	for _, tier := range t {
		if hits >= tier.Hits && (!tier.Reintegro || reintegro) {
			return tier, true
		}
	}
	return PayoutTier{}, false
}

// Categories devuelve los nombres de categoría en orden de la tabla.
func (t PayoutTable) Categories() []string {
	out := make([]string, len(t))
	for i, tier := range t {
		out[i] = tier.Category
	}
	return out
}
