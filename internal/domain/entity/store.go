package entity

// Store dimensión de tienda (tabla magasins). Única por nombre.
type Store struct {
	ID   int64
	Name string
}
