package domain

import "time"

// RunSummary es el resumen persistido de una evaluación: suficiente para
// comparar runs entre sí sin guardar el detalle paso a paso.
type RunSummary struct {
	ID          string // uuid del run
	Game        string
	Method      string
	RanAt       time.Time
	Evaluations int
	MeanHits    float64
	PctAtLeast3 float64
	PctAtLeast4 float64
	Baseline    float64
}
