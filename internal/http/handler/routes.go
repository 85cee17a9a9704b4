package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"labpipe/internal/auth"
	"labpipe/internal/http/middleware"
	"labpipe/internal/service"
)

// Services bundles the use-case layer for route registration.
type Services struct {
	Users    service.UserService
	Files    service.FileService
	Jobs     service.JobService
	Pipeline service.PipelineService
}

// RegisterRoutes attaches every HTTP route to the provided Fiber app. This is
// the only place paths are declared; handlers never hardcode their own.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenIssuer, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	users := app.Group("/users")
	users.Post("/signup", Signup(svcs.Users))
	users.Post("/login", Login(svcs.Users))
	users.Get("/me", middleware.Auth(tokens), Me(svcs.Users))

	files := app.Group("/files", middleware.Auth(tokens))
	files.Post("/upload", UploadFile(svcs.Files))
	files.Get("/", ListFiles(svcs.Files))
	files.Get("/:id", GetFile(svcs.Files))

	// Literal paths must be registered before the :id wildcard.
	pipelines := app.Group("/pipelines", middleware.Auth(tokens))
	pipelines.Post("/create-job", CreateJob(svcs.Jobs))
	pipelines.Post("/run-step", RunStep(svcs.Pipeline))
	pipelines.Get("/jobs", ListMyJobs(svcs.Jobs))
	pipelines.Get("/all-jobs", ListAllJobs(svcs.Jobs))
	pipelines.Get("/steps", ListCommands(svcs.Pipeline))
	pipelines.Post("/", StartPipeline(svcs.Jobs))
	pipelines.Get("/:id", GetStep(svcs.Jobs))
}
