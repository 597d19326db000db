package vm

import "github.com/chewxy/math32"

var (
	posInf = math32.Inf(1)
	negInf = math32.Inf(-1)
)

func maxf(a, b float32) float32 { return math32.Max(a, b) }
func minf(a, b float32) float32 { return math32.Min(a, b) }
func sqrtf(a float32) float32   { return math32.Sqrt(a) }
