package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Quiz     QuizConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// AdminConfig содержит настройки доступа администратора
type AdminConfig struct {
	// Password: пароль админ-панели. Либо bcrypt-хеш, либо открытый текст
	// (сравнивается за постоянное время). Обязателен: умолчания нет.
	Password string `mapstructure:"password"`

	// TokenSecret: ключ подписи админских JWT.
	TokenSecret string `mapstructure:"token_secret"`

	// TokenExpiryHrs: время жизни админского токена в часах.
	TokenExpiryHrs int `mapstructure:"token_expiry_hrs"`
}

// QuizConfig содержит настройки игрового процесса
type QuizConfig struct {
	// QuestionTimerSec: бюджет времени на вопрос в секундах.
	QuestionTimerSec int `mapstructure:"question_timer_sec"`

	// PointsPerAnswer: очки за правильный ответ.
	PointsPerAnswer int `mapstructure:"points_per_answer"`

	// QuestionCacheTTL: окно свежести кеша банка вопросов.
	QuestionCacheTTL time.Duration `mapstructure:"question_cache_ttl"`

	// StatusCacheTTL: окно свежести кеша флага доступности.
	StatusCacheTTL time.Duration `mapstructure:"status_cache_ttl"`

	// RankingLimit: сколько строк рейтинга показывать (top-N).
	RankingLimit int `mapstructure:"ranking_limit"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// Значения по умолчанию для игровых настроек
	vip.SetDefault("quiz.question_timer_sec", 30)
	vip.SetDefault("quiz.points_per_answer", 10)
	vip.SetDefault("quiz.question_cache_ttl", time.Minute)
	vip.SetDefault("quiz.status_cache_ttl", 15*time.Second)
	vip.SetDefault("quiz.ranking_limit", 100)
	vip.SetDefault("admin.token_expiry_hrs", 12)

	// Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции Admin
	vip.BindEnv("admin.password", "ADMIN_PASSWORD")
	vip.BindEnv("admin.token_secret", "ADMIN_TOKEN_SECRET")
	vip.BindEnv("admin.token_expiry_hrs", "ADMIN_TOKEN_EXPIRYHRS")

	// Привязка для секции Quiz
	vip.BindEnv("quiz.question_timer_sec", "QUIZ_QUESTION_TIMER_SEC")
	vip.BindEnv("quiz.ranking_limit", "QUIZ_RANKING_LIMIT")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// Путь к файлу конфигурации (не страшно, если файла нет: есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// Анмаршалим конфигурацию (Viper объединит файл и привязанные env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Question Timer: %d sec", cfg.Quiz.QuestionTimerSec)
		log.Printf("Admin Password Set: %t", cfg.Admin.Password != "")
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}

	// Пароль администратора обязателен. Исторический фолбэк "admin" из
	// первой версии приложения не принимается.
	if cfg.Admin.Password == "" {
		return nil, fmt.Errorf("admin password is required in config (check ADMIN_PASSWORD env var)")
	}
	if cfg.Admin.Password == "admin" {
		return nil, fmt.Errorf("admin password 'admin' is not allowed, configure a real one")
	}
	if cfg.Admin.TokenSecret == "" {
		return nil, fmt.Errorf("admin token secret is required in config (check ADMIN_TOKEN_SECRET env var)")
	}

	if cfg.Quiz.QuestionTimerSec <= 0 {
		return nil, fmt.Errorf("quiz.question_timer_sec must be positive")
	}

	return &cfg, nil
}
