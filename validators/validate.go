package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"elearn/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseBody decodes the JSON body into dst, validates it and stores it under
// key in the request locals. Failures are answered with a 400.
func ParseBody(c *fiber.Ctx, dst interface{}, key string) error {
	if err := c.BodyParser(dst); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
		fields := make(map[string]string, len(verrs))
		onlyMissing := true
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
			if fe.Tag() != "required" {
				onlyMissing = false
			}
		}
		message := "Validation failed"
		if onlyMissing {
			message = "All fields are required"
		}
		return middleware.ValidationErrorResponse(c, message, fields)
	}

	c.Locals(key, dst)
	return c.Next()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
