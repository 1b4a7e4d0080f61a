package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/service/sessionmanager"
	ws "github.com/yourusername/quiz-api/internal/websocket"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	rankingRepo := pgRepo.NewRankingRepo(db)
	statusRepo := pgRepo.NewStatusRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис для админских токенов
	jwtService, err := auth.NewJWTService(cfg.Admin.TokenSecret, cfg.Admin.TokenExpiryHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	questionService := service.NewQuestionService(questionRepo, cacheRepo, cfg.Quiz.QuestionCacheTTL)
	statusService := service.NewStatusService(statusRepo, cacheRepo, cfg.Quiz.StatusCacheTTL)
	resultService := service.NewResultService(rankingRepo, cfg.Quiz.RankingLimit)
	authService := service.NewAuthService(cfg.Admin.Password, jwtService)

	// Инициализация WebSocket Hub: он же доставляет события сессий
	hub := ws.NewHub()

	// Инициализируем менеджер игровых сессий
	sessionConfig := &sessionmanager.Config{
		QuestionTimerSec: cfg.Quiz.QuestionTimerSec,
		PointsPerAnswer:  cfg.Quiz.PointsPerAnswer,
	}
	sessions := sessionmanager.NewManager(sessionConfig, &sessionmanager.Dependencies{
		Questions: questionService,
		Status:    statusService,
		Results:   resultService,
		Notifier:  hub,
	})

	// Контекст жизненного цикла фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Уборка брошенных сессий: раз в минуту, лимит простоя 30 минут
	sessions.StartJanitor(ctx, time.Minute, 30*time.Minute)

	// Инициализируем обработчики
	sessionHandler := handler.NewSessionHandler(sessions, statusService, authService, jwtService, hub)
	rankingHandler := handler.NewRankingHandler(resultService)
	adminHandler := handler.NewAdminHandler(questionService, statusService)

	// Инициализируем middleware
	adminMiddleware := middleware.NewAdminMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Игровые сессии
		sessionsGroup := api.Group("/sessions")
		{
			sessionsGroup.POST("", sessionHandler.CreateSession)

			withID := sessionsGroup.Group("/:id")
			{
				withID.GET("", sessionHandler.GetSession)
				withID.POST("/start", sessionHandler.StartQuiz)
				withID.POST("/answer", sessionHandler.SubmitAnswer)
				withID.POST("/next", sessionHandler.NextQuestion)
				withID.POST("/restart", sessionHandler.Restart)
				withID.DELETE("", sessionHandler.DeleteSession)
				withID.GET("/ws", sessionHandler.Subscribe)

				withID.POST("/admin/login", sessionHandler.AdminLogin)
				withID.POST("/admin/logout", sessionHandler.AdminLogout)
			}
		}

		// Рейтинг (публичные маршруты)
		api.GET("/ranking", rankingHandler.GetRanking)
		api.GET("/ranking/export", rankingHandler.ExportRanking)

		// Админ-панель
		admin := api.Group("/admin")
		admin.Use(adminMiddleware.RequireAdmin())
		{
			admin.GET("/status", adminHandler.GetStatus)
			admin.PUT("/status", adminHandler.SetStatus)
			admin.GET("/questions", adminHandler.GetQuestions)
			admin.PUT("/questions", adminHandler.ReplaceQuestions)
			admin.PATCH("/questions", adminHandler.EditQuestions)
			admin.GET("/qrcode", adminHandler.GetQRCode)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждём SIGINT или SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Отправляем сигнал завершения для всех горутин
	cancel()

	// Останавливаем таймеры сессий и закрываем WebSocket соединения
	sessions.Shutdown()
	hub.Shutdown()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
