package entity

// Product dimensión de producto (tabla produits). Única por nombre.
// Se crea de forma perezosa durante la ingesta; este núcleo nunca la actualiza ni la borra.
type Product struct {
	ID   int64
	Name string
}
