package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

const unknownRoute = "unmatched"

// Metrics считает запросы и их длительность по шаблону маршрута mux
func Metrics(observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			observer.ObserveHTTP(r.Method, routeTemplate(r), strconv.Itoa(sw.status), time.Since(start).Seconds())
		})
	}
}

// routeTemplate шаблон вместо фактического пути, чтобы не плодить лейблы по ID
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unknownRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unknownRoute
	}
	return tpl
}
