package app

import (
	"net/http"

	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(propagateSession)
}

// propagateSession puts the caller's bearer credential into the request context. Requests
// without one pass through; only operations that call the events API require it.
func propagateSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		header := req.Header.Get("Authorization")
		if header != "" {
			s, err := session.FromAuthorizationHeader(header)
			if err != nil {
				log.Debugf("ignoring unsupported Authorization header: %v", err)
			} else {
				log.Trace("Propagating session credential")
				ctx = session.WithSession(ctx, s)
			}
		}
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
