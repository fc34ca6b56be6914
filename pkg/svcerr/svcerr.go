// Package svcerr carries the service error taxonomy across the
// service/handler boundary. Handlers map any error to an HTTP status and a
// stable {error, code} body; anything outside the taxonomy is an internal
// error and its detail stays in the server log.
package svcerr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Code    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Unauthorized(msg string) error {
	return &Error{Code: "UNAUTHORIZED", Status: fiber.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{Code: "FORBIDDEN", Status: fiber.StatusForbidden, Message: msg}
}

func BadRequest(msg string) error {
	return &Error{Code: "BAD_REQUEST", Status: fiber.StatusBadRequest, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Code: "NOT_FOUND", Status: fiber.StatusNotFound, Message: msg}
}

func Unavailable(msg string) error {
	return &Error{Code: "SERVICE_UNAVAILABLE", Status: fiber.StatusServiceUnavailable, Message: msg}
}

// Upstream wraps a failed provider call. The cause is for the server log;
// the message is safe for callers.
func Upstream(msg string, cause error) error {
	return &Error{Code: "UPSTREAM_FAILURE", Status: fiber.StatusBadGateway, Message: msg, cause: cause}
}

// HTTPStatus resolves the status for any error; non-taxonomy errors are 500.
func HTTPStatus(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return fiber.StatusInternalServerError
}

// Code resolves the machine-readable code for any error.
func Code(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return "INTERNAL_ERROR"
}

// Message returns a caller-safe message; internal errors are masked.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "something went wrong"
}
