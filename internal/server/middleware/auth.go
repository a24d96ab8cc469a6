// Package middleware provides HTTP middleware for request identification and
// bearer-token authentication.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type subjectContextKey struct{}

// ErrNoSubject is returned by GetSubject for requests that did not pass AuthMiddleware.
var ErrNoSubject = errors.New("subject not found in request context")

// TokenValidator verifies a bearer token. It is satisfied by an adapter in
// the server package so this package stays free of JWT details.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter exposes the client identity carried by a token.
type SubjectGetter interface {
	GetSubject() (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token subject in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := authenticate(validator, r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), subjectContextKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(validator TokenValidator, header string) (string, bool) {
	token, ok := bearerToken(header)
	if !ok {
		return "", false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return "", false
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", false
	}
	return subject, true
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="onepager"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
}

// GetSubject returns the token subject stored by AuthMiddleware.
func GetSubject(r *http.Request) (string, error) {
	subject, ok := r.Context().Value(subjectContextKey{}).(string)
	if !ok {
		return "", ErrNoSubject
	}
	return subject, nil
}
