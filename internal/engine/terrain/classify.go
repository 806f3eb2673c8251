package terrain

// Corner weights of the marching squares case code.
const (
	weightTopLeft     = 8
	weightTopRight    = 4
	weightBottomRight = 2
	weightBottomLeft  = 1
)

// Case codes with special handling.
const (
	CaseEmpty = 0
	CaseFull  = 15
)

// Classify maps the four corner samples of a cell to its case code in [0, 15].
func Classify(topLeft, topRight, bottomRight, bottomLeft bool) int {
	code := 0
	if topLeft {
		code += weightTopLeft
	}
	if topRight {
		code += weightTopRight
	}
	if bottomRight {
		code += weightBottomRight
	}
	if bottomLeft {
		code += weightBottomLeft
	}
	return code
}
