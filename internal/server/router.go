package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studytrack-backend/internal/handlers"
	"github.com/yungbote/studytrack-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	CourseHandler   *handlers.CourseHandler
	NoteHandler     *handlers.NoteHandler
	QuestionHandler *handlers.QuestionHandler
	ProgressHandler *handlers.ProgressHandler
	TodoHandler     *handlers.TodoHandler
	StrategyHandler *handlers.StrategyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Courses
	protected.GET("/courses", cfg.CourseHandler.ListCourses)
	protected.POST("/courses", cfg.CourseHandler.CreateCourse)
	protected.GET("/courses/:course_id", cfg.CourseHandler.GetCourse)
	protected.PUT("/courses/:course_id", cfg.CourseHandler.UpdateCourse)
	protected.DELETE("/courses/:course_id", cfg.CourseHandler.DeleteCourse)
	// Notes
	protected.GET("/courses/:course_id/notes", cfg.NoteHandler.ListNotes)
	protected.POST("/courses/:course_id/notes", cfg.NoteHandler.CreateNote)
	protected.POST("/courses/:course_id/notes/generate", cfg.NoteHandler.GenerateNotes)
	protected.GET("/notes/:note_id", cfg.NoteHandler.GetNote)
	protected.PUT("/notes/:note_id", cfg.NoteHandler.UpdateNote)
	protected.DELETE("/notes/:note_id", cfg.NoteHandler.DeleteNote)
	// Practice questions
	protected.GET("/courses/:course_id/questions", cfg.QuestionHandler.ListQuestions)
	protected.POST("/courses/:course_id/questions", cfg.QuestionHandler.CreateQuestion)
	protected.POST("/courses/:course_id/questions/generate", cfg.QuestionHandler.GenerateQuestions)
	protected.PUT("/questions/:question_id", cfg.QuestionHandler.UpdateQuestion)
	protected.DELETE("/questions/:question_id", cfg.QuestionHandler.DeleteQuestion)
	// Progress
	protected.POST("/question-progress", cfg.ProgressHandler.RecordConfidence)
	protected.POST("/study-sessions", cfg.ProgressHandler.StartSession)
	protected.POST("/study-sessions/:session_id/end", cfg.ProgressHandler.EndSession)
	protected.GET("/weekly-progress", cfg.ProgressHandler.GetWeeklyProgress)
	// Todos
	protected.GET("/todos", cfg.TodoHandler.ListTodos)
	protected.POST("/todos", cfg.TodoHandler.CreateTodo)
	protected.PUT("/todos/:todo_id", cfg.TodoHandler.UpdateTodo)
	protected.DELETE("/todos/:todo_id", cfg.TodoHandler.DeleteTodo)
	// Test strategies
	protected.POST("/test-strategies", cfg.StrategyHandler.GenerateTestStrategies)

	return router
}
