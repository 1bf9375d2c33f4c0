// Package api holds the small pieces shared by all HTTP handlers:
// the authenticated-identity context keys and the mapping of binding
// failures to field-level error messages.
package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Context keys set by the auth middleware.
const (
	UserIDKey = "auth.userID"
	RoleKey   = "auth.role"
)

// UserID returns the authenticated user's id from the request context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Role returns the authenticated user's role from the request context.
func Role(c *gin.Context) string {
	v, ok := c.Get(RoleKey)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}

// ValidationErrors turns a binding error into per-field messages.
// Non-validator errors (malformed JSON and the like) map to a single
// "body" entry.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "invalid request body"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = "must be at least " + fe.Param() + " characters"
		case "max":
			out[field] = "must be at most " + fe.Param() + " characters"
		case "gt":
			out[field] = "must be greater than " + fe.Param()
		case "gte":
			out[field] = "must be at least " + fe.Param()
		case "lte":
			out[field] = "must be at most " + fe.Param()
		case "oneof":
			out[field] = "must be one of: " + fe.Param()
		default:
			out[field] = "is invalid"
		}
	}
	return out
}
