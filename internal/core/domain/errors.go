package domain

import "errors"

var ErrNotFound = errors.New("recurso não encontrado")
var ErrForbidden = errors.New("acesso negado")
var ErrInvalidCredentials = errors.New("Credenciais inválidas")
var ErrInvalidTransition = errors.New("transição de status inválida")
var ErrNotAuthenticated = errors.New("nenhum usuário autenticado na sessão")

// RequestError is the uniform failure shape every gateway call produces.
// Message is the backend's {message} body when present; the service layer
// substitutes a fixed per-operation fallback when it is empty.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "falha na requisição"
}

// Unwrap maps well-known HTTP statuses onto sentinel errors so callers can
// discriminate with errors.Is instead of matching message text.
func (e *RequestError) Unwrap() error {
	switch e.StatusCode {
	case 404:
		return ErrNotFound
	case 403:
		return ErrForbidden
	}
	return nil
}
