// services/http.go
package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/edube-platform/edube_api/docs"
	"github.com/edube-platform/edube_api/services/handlers"
	"github.com/edube-platform/edube_api/shared"
)

// HttpService is the public API surface. Routes delegate to the domain
// services through the handler interfaces; typed errors surface through the
// fiber error handler.
type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	catalogSvc    *CatalogService
	enrollmentSvc *EnrollmentService
	progressSvc   *ProgressService
	reviewSvc     *ReviewService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService
	rateLimitSvc  *RateLimitService

	authMiddleware AuthProvider

	port   int
	server *fiber.App
}

// AuthProvider decouples route guards from the middleware package.
type AuthProvider interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

// SetAuthProvider must be called before Start; the middleware package
// registers itself here to avoid an import cycle.
func (svc *HttpService) SetAuthProvider(provider AuthProvider) {
	svc.authMiddleware = provider
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.enrollmentSvc = svc.Service(ENROLLMENT_SVC).(*EnrollmentService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.reviewSvc = svc.Service(REVIEW_SVC).(*ReviewService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		JSONEncoder:  shared.JSONMarshal,
		JSONDecoder:  shared.JSONUnmarshal,
		ErrorHandler: svc.handleError,
		BodyLimit:    512 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, http.StatusNotFound, "page not found", nil)
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	courseHandler := handlers.NewCourseHandler(svc.catalogSvc)
	enrollmentHandler := handlers.NewEnrollmentHandler(svc.enrollmentSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	reviewHandler := handlers.NewReviewHandler(svc.reviewSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	auth := svc.authMiddleware.RequiredAuth()
	mentorOnly := svc.authMiddleware.RequireRole(shared.RoleMentor)

	v1 := app.Group("/api/v1")

	v1.Get("/ping", svc.ping)

	// Auth
	v1.Post("/register", svc.rateLimitSvc.Limit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.Limit("login"), authHandler.Login)
	v1.Get("/me", auth, authHandler.Me)

	// Catalog
	v1.Get("/courses", courseHandler.ListCourses)
	v1.Get("/courses/:courseId", courseHandler.GetCourse)
	v1.Get("/courses/:courseId/lessons", courseHandler.GetCourseLessons)
	v1.Post("/courses", auth, mentorOnly, courseHandler.CreateCourse)
	v1.Post("/courses/:courseId/sections", auth, mentorOnly, courseHandler.CreateSection)
	v1.Post("/sections/:sectionId/lessons", auth, mentorOnly, courseHandler.CreateLesson)
	v1.Patch("/courses/:courseId/publish", auth, mentorOnly, courseHandler.PublishCourse)

	// Reviews
	v1.Get("/courses/:courseId/reviews", reviewHandler.ListByCourse)
	v1.Post("/courses/:courseId/reviews", auth, reviewHandler.Create)

	// Enrollments
	v1.Post("/enrollments", auth, svc.rateLimitSvc.Limit("enroll"), enrollmentHandler.Enroll)
	v1.Get("/enrollments/learner/:learnerId", auth, enrollmentHandler.ListByLearner)
	v1.Get("/enrollments/:id", auth, enrollmentHandler.GetEnrollment)
	v1.Patch("/enrollments/:id/progress", auth, enrollmentHandler.UpdateProgress)
	v1.Patch("/enrollments/:id/status", auth, enrollmentHandler.UpdateStatus)

	// Lesson progress
	v1.Get("/lesson-progress/enrollment/:enrollmentId", auth, progressHandler.ListForEnrollment)
	v1.Get("/lesson-progress/course-progress/:enrollmentId", auth, progressHandler.CourseProgress)
	v1.Post("/lesson-progress", auth, svc.rateLimitSvc.Limit("progress_write"), progressHandler.Create)
	v1.Patch("/lesson-progress/:id", auth, svc.rateLimitSvc.Limit("progress_write"), progressHandler.Update)

	// Media
	v1.Post("/lessons/:lessonId/video", auth, mentorOnly, mediaHandler.UploadVideo)
	v1.Post("/lessons/:lessonId/document", auth, mentorOnly, mediaHandler.UploadDocument)
	v1.Get("/lessons/:lessonId/media", auth, mediaHandler.GetLessonMedia)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
