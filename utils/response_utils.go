package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithErrorCode sends a JSON error response carrying a machine-readable code.
func RespondWithErrorCode(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// RespondWithMessage sends a JSON success response with a message.
func RespondWithMessage(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var out []string
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			out = append(out, err.Error())
		}
		return out
	}
	for _, fe := range verrs {
		element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			element = fmt.Sprintf("%s (value: %s)", element, fe.Param())
		}
		out = append(out, element)
	}
	return out
}

// SanitizeInput trims surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}

// SanitizeTags trims tags and drops blanks and case-insensitive duplicates, keeping first occurrence.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = SanitizeInput(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
