package dto

// CreateDeckRequest тело POST /api/decks
type CreateDeckRequest struct {
	Title string `json:"title"`
}

// UpdateDeckRequest тело PUT /api/decks/:id
type UpdateDeckRequest struct {
	Title string `json:"title"`
}

// MessageResponse ответ-подтверждение без данных
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse единый формат ошибки для всех маршрутов
type ErrorResponse struct {
	Error string `json:"error"`
}
