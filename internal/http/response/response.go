// Package response формирует JSON-ответы шлюза отчётов. Успешный ответ содержит массив строк,
// ошибка всегда отдаётся со статусом 400 и телом ровно {"error": "..."}.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// ErrorResponse описывает тело ответа с ошибкой. Других полей в нём нет.
type ErrorResponse struct {
	Error string `json:"error" example:"Missing token"`
}

// Error возвращает тело ответа с сообщением msg.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// WriteError отвечает 400 с телом {"error": msg}.
func WriteError(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(msg))
}

// WriteRows отвечает 200 с массивом строк отчёта.
func WriteRows(w http.ResponseWriter, r *http.Request, rows any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, rows)
}

// ValidationError собирает нарушения валидации в одно человеко-читаемое сообщение.
func ValidationError(errs validator.ValidationErrors) string {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be %s characters long", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}
