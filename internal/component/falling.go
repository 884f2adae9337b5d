package component

// FallingObject moves an entity down the screen while spinning it.
type FallingObject struct {
	FallRate float64 // units per second
	SpinRate float64 // radians per second
	Radius   float64
}
