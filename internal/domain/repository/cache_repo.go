package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем ограниченной
// свежести. Окно свежести задаётся expiration; явная инвалидация
// вызывается ровно из двух админских путей записи.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
