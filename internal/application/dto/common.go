package dto

// PageRequest paginación para listados y reportes.
// all=true o limit=0 desactivan la paginación y devuelven todo.
type PageRequest struct {
	Page  int  `query:"page"`
	Limit int  `query:"limit"`
	All   bool `query:"all"`
}

// Normalize aplica valores por defecto.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
}

// Unpaged indica si el cliente pidió el conjunto completo.
func (p PageRequest) Unpaged() bool {
	return p.All || p.Limit == 0
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
