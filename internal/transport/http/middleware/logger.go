package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"component": "http",
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"elapsed":   time.Since(start),
			"requestId": chimw.GetReqID(r.Context()),
		}).Debug("request")
	})
}
