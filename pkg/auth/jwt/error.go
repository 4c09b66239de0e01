package jwt

import "net/http"

type Error string

// JWTError pairs the HTTP status with the body written to rejected
// requests.
type JWTError struct {
	Code int
	Msg  string `json:"msg"`
}

const (
	ErrUnAuthorized = Error("UnAuthorized")
	ErrForbidden    = Error("FORBIDDEN")
)

var Errors = map[Error]*JWTError{
	ErrUnAuthorized: {Code: http.StatusUnauthorized, Msg: "UnAuthorized"},
	ErrForbidden:    {Code: http.StatusForbidden, Msg: "Forbidden"},
}
