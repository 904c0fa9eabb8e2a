package dto

type TechniqueOutput struct {
	ID              string
	Name            string
	Pattern         string
	CycleSeconds    int
	SessionSeconds  int
	CyclesInSession int
	Default         bool
}
