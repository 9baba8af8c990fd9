// Package middlewarectx содержит HTTP middleware шлюза отчётов: CORS-заголовки
// и ограничение частоты запросов.
package middlewarectx

import (
	"net/http"
	"strings"
)

// Значения CORS-заголовков шлюза.
const (
	AllowHeaders = "Authorization, Content-Type"
	AllowMethods = "GET,OPTIONS"
)

// CORS выставляет CORS-заголовки один раз до обработчика, поэтому их получает
// каждый ответ: успешный, ошибка, восстановленная паника, 404/405 роутера.
//
// Allow-Origin: совпавший с Origin элемент allowed; "*" при пустом списке
// или если в нём есть "*"; иначе первый элемент списка.
func CORS(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := allowOrigin(allowed, r.Header.Get("Origin"))
			h.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Headers", AllowHeaders)
			h.Set("Access-Control-Allow-Methods", AllowMethods)
			next.ServeHTTP(w, r)
		})
	}
}

func allowOrigin(allowed []string, origin string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, a := range allowed {
		a = strings.TrimSpace(a)
		if a == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(a, origin) {
			return a
		}
	}
	return strings.TrimSpace(allowed[0])
}
