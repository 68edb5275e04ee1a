package courseValidator

import (
	"elearn/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

// ProgressRequest uses pointers so an explicit false or a missing field can
// be told apart.
type ProgressRequest struct {
	CourseID  string `json:"courseId" validate:"required"`
	LessonID  *int   `json:"lessonId" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validators.ParseBody(c, new(CourseRequest), "validatedEnrollment")
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validators.ParseBody(c, new(ProgressRequest), "validatedProgress")
	}
}

func RequestCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validators.ParseBody(c, new(CourseRequest), "validatedCertificate")
	}
}
