package middleware

import (
	"encoding/json"
	"net/http"
)

// AdminKey guards manual trigger and maintenance endpoints with a static
// key carried in the X-Admin-Key header. An unset key disables the
// endpoints entirely rather than leaving them open.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				writeAuthError(w, http.StatusServiceUnavailable, "Admin endpoints are not configured")
				return
			}
			if r.Header.Get("X-Admin-Key") != key {
				writeAuthError(w, http.StatusUnauthorized, "Invalid admin key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": msg,
	})
}
