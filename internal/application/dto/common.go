package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
}

// Offset desplazamiento derivado de página y límite.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP. Remaining/Available acompañan los
// conflictos de cantidad para que el caller reintente con un valor corregido.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Remaining *int64 `json:"remaining,omitempty"`
	Available *int64 `json:"available,omitempty"`
}
