package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "tutorbook/pkg/errors"
)

const bearerPrefix = "bearer "

// BearerToken returns the credential carried in the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", apperrors.Unauthorized("Missing authorization header")
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", apperrors.Unauthorized("Authorization header must use the Bearer scheme")
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", apperrors.Unauthorized("Missing bearer token")
	}
	return token, nil
}

// DecodeJSON reads a single JSON object from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		return apperrors.InvalidInput("Invalid JSON body")
	}
	return nil
}

func QueryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
