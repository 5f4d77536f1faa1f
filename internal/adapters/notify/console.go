package notify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/HCTop/LoteriaProbabilidad/internal/backtest"
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/prize"
)

// Console imprime los informes de backtest y de simulación de premios.
type Console struct {
	out io.Writer
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// PrintBacktest imprime la tabla de histogramas y el ranking de métodos.
func (c *Console) PrintBacktest(game domain.Game, results []backtest.Result) {
	if len(results) == 0 {
		fmt.Fprintln(c.out, "\n  Sin resultados de backtest.")
		return
	}

	fmt.Fprintf(c.out, "\n=== BACKTEST %s — %d sorteos evaluados por método ===\n\n",
		strings.ToUpper(game.Name), results[0].Evaluated)

	c.printHistograms(game, results)
	c.printRanking(game, results)
}

// printHistograms imprime cuántas veces cada método acertó 0..Pick números.
func (c *Console) printHistograms(game domain.Game, results []backtest.Result) {
	header := []any{"Metodo"}
	for h := 0; h <= game.Pick; h++ {
		header = append(header, fmt.Sprintf("%dac", h))
	}
	header = append(header, "MEDIA", "3ac+", "4ac+")

	table := tablewriter.NewWriter(c.out)
	table.Header(header...)

	for _, r := range results {
		row := []any{r.Method}
		for h := 0; h <= game.Pick; h++ {
			row = append(row, fmt.Sprintf("%d", r.Histogram[h]))
		}
		row = append(row,
			fmt.Sprintf("%.3f", r.MeanHits),
			fmt.Sprintf("%.1f%%", r.PctAtLeast3),
			fmt.Sprintf("%.1f%%", r.PctAtLeast4),
		)
		table.Append(row...)
	}
	table.Render()

	fmt.Fprintf(c.out, "  MEDIA = aciertos medios por sorteo | baseline azar %dx%d/%d = %.3f\n",
		game.Pick, game.Pick, game.Range, game.ExpectedHits())
}

// printRanking imprime los métodos ordenados por media de aciertos.
func (c *Console) printRanking(game domain.Game, results []backtest.Result) {
	ranked := backtest.RankByMean(results)
	baseline := game.ExpectedHits()

	fmt.Fprintf(c.out, "\n=== RANKING ===\n")
	for i, r := range ranked {
		mark := " "
		if r.BeatsBaseline() {
			mark = "*"
		}
		fmt.Fprintf(c.out, "  %2d. %s %-26s media %.3f  (%+.3f vs azar)\n",
			i+1, mark, r.Method, r.MeanHits, r.MeanHits-baseline)
	}
	fmt.Fprintf(c.out, "\n  * = supera la media del azar (%.3f)\n", baseline)
	fmt.Fprintln(c.out, "  Ojo: diferencias pequeñas sobre pocas evaluaciones son ruido, no señal.")
	fmt.Fprintln(c.out)
}

// PrintPrize imprime el resultado de cada estrategia de cobertura.
func (c *Console) PrintPrize(game domain.Game, results []prize.StrategyResult) {
	if len(results) == 0 {
		fmt.Fprintln(c.out, "\n  Sin resultados de simulación de premios.")
		return
	}

	fmt.Fprintf(c.out, "\n=== SIMULACION DE PREMIOS %s — %d sorteos ===\n\n",
		strings.ToUpper(game.Name), results[0].Draws)

	table := tablewriter.NewWriter(c.out)
	table.Header("Estrategia", "GAST", "GAN", "BAL", "Ret%")

	for _, r := range results {
		ret := 0.0
		if r.Spent > 0 {
			ret = r.Won / r.Spent * 100
		}
		table.Append(
			r.Strategy,
			fmt.Sprintf("%.0f", r.Spent),
			fmt.Sprintf("%.0f", r.Won),
			fmt.Sprintf("%+.0f", r.Balance),
			fmt.Sprintf("%.1f%%", ret),
		)
	}
	table.Render()

	fmt.Fprintln(c.out, "  GAST/GAN/BAL en euros | BAL = GAN - GAST | bote no contabilizado")

	c.printCategories(results)
}

// printCategories desglosa los premios obtenidos por categoría.
func (c *Console) printCategories(results []prize.StrategyResult) {
	for _, r := range results {
		if len(r.Categories) == 0 {
			continue
		}
		cats := make([]string, 0, len(r.Categories))
		for cat := range r.Categories {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		var sb strings.Builder
		fmt.Fprintf(&sb, "  %-26s", r.Strategy)
		for _, cat := range cats {
			fmt.Fprintf(&sb, "  %s:%d", cat, r.Categories[cat])
		}
		fmt.Fprintln(c.out, sb.String())
	}
	fmt.Fprintln(c.out)
}

// PrintIngest imprime el resumen de una actualización del histórico.
func (c *Console) PrintIngest(game domain.Game, total, added int) {
	fmt.Fprintf(c.out, "  %s: %d sorteos en el histórico (%d nuevos)\n",
		game.Name, total, added)
}
