package components

// FadeComponent 透明度渐变
type FadeComponent struct {
	From, To float64
	Duration float64
	Elapsed  float64
	Done     bool
}
