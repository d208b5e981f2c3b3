package middleware

import "net/http"

// InternalAuth guards mutating routes with a shared token obtained out
// of band. The upstream gateway owns sessions and forgery protection;
// this is the credential it forwards.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Internal-Token") != token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
