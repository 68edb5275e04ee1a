package controllers

import (
	"errors"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/services"
	"elearn/store"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// courseResponse repeats the lessons under videoLessons, the name the
// production frontend reads.
type courseResponse struct {
	models.Course
	VideoLessons []models.Lesson `json:"videoLessons"`
}

func toCourseResponse(course models.Course) courseResponse {
	if course.Lessons == nil {
		course.Lessons = []models.Lesson{}
	}
	return courseResponse{Course: course, VideoLessons: course.Lessons}
}

func GetAllCourses(c *fiber.Ctx) error {
	courses, err := database.Database.Store.ListCourses(c.UserContext())
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch courses")
	}
	out := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResponse(course))
	}
	return c.JSON(out)
}

func GetCourseDetails(c *fiber.Ctx) error {
	course, err := database.Database.Store.GetCourse(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		err = services.ErrCourseNotFound
	}
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch course")
	}
	return c.JSON(toCourseResponse(course))
}

func EnrollInCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEnrollment").(*courseValidator.CourseRequest)

	enrollment, created, err := services.Enroll(c.UserContext(), database.Database.Store, middleware.CurrentUserID(c), reqData.CourseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Enrollment failed")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(enrollment)
}

func GetUserEnrollments(c *fiber.Ctx) error {
	enrollments, err := services.ListEnrollments(c.UserContext(), database.Database.Store, middleware.CurrentUserID(c))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch enrollments")
	}
	return c.JSON(enrollments)
}

func GetUserProgress(c *fiber.Ctx) error {
	progress, err := services.GetProgress(c.UserContext(), database.Database.Store, c.Params("userId"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch progress")
	}
	return c.JSON(progress)
}

func UpdateProgress(c *fiber.Ctx) error {
	reqData := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)

	progress, err := services.UpsertProgress(c.UserContext(), database.Database.Store,
		middleware.CurrentUserID(c), reqData.CourseID, *reqData.LessonID, *reqData.Completed)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to update progress")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

func RequestCertificate(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCertificate").(*courseValidator.CourseRequest)

	cert, created, err := services.IssueCertificate(c.UserContext(), database.Database.Store, middleware.CurrentUserID(c), reqData.CourseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to issue certificate")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(cert)
}

func GetUserCertificates(c *fiber.Ctx) error {
	certs, err := services.ListCertificates(c.UserContext(), database.Database.Store, middleware.CurrentUserID(c))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch certificates")
	}
	return c.JSON(certs)
}
