package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/studytrack-backend/internal/db"
	"github.com/yungbote/studytrack-backend/internal/handlers"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/middleware"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/server"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	confidenceRepo := repos.NewConfidenceRepo(thePG, log)
	sessionRepo := repos.NewStudySessionRepo(thePG, log)
	dailyRepo := repos.NewDailyStudyRepo(thePG, log)
	todoRepo := repos.NewTodoRepo(thePG, log)
	txRunner := repos.NewGormTxRunner(thePG)

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	courseService := services.NewCourseService(thePG, log, courseRepo, noteRepo, questionRepo, confidenceRepo, sessionRepo, todoRepo)
	noteService := services.NewNoteService(thePG, log, courseRepo, noteRepo)
	questionService := services.NewQuestionService(thePG, log, courseRepo, questionRepo)
	progressService := services.NewProgressService(txRunner, log, courseRepo, questionRepo, confidenceRepo, sessionRepo, dailyRepo)
	todoService := services.NewTodoService(thePG, log, courseRepo, todoRepo)
	generationService := services.NewGenerationService(thePG, log, courseRepo, noteRepo, questionRepo, openaiClient)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	noteHandler := handlers.NewNoteHandler(noteService, generationService)
	questionHandler := handlers.NewQuestionHandler(questionService, generationService)
	progressHandler := handlers.NewProgressHandler(progressService)
	todoHandler := handlers.NewTodoHandler(todoService)
	strategyHandler := handlers.NewStrategyHandler(generationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		UserHandler:     userHandler,
		CourseHandler:   courseHandler,
		NoteHandler:     noteHandler,
		QuestionHandler: questionHandler,
		ProgressHandler: progressHandler,
		TodoHandler:     todoHandler,
		StrategyHandler: strategyHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
