package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DimensionDTO tienda o producto registrado.
type DimensionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
