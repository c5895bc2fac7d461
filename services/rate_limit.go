// services/rate_limit.go
package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/edube-platform/edube_api/shared"
)

// RateLimitService throttles sensitive endpoints. Counters live in Redis so
// limits hold across instances; a window key expires on its own.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

// ==================== CONFIGURATION MANAGEMENT ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		"enroll": {
			EndpointType: "enroll",
			MaxRequests:  30,
			WindowSize:   time.Minute,
			Description:  "Enrollment creation rate limit",
			IsActive:     true,
		},
		"progress_write": {
			EndpointType: "progress_write",
			MaxRequests:  120,
			WindowSize:   time.Minute,
			Description:  "Lesson progress mutation rate limit",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) getConfig(endpointType string) *RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.configs[endpointType]
}

// ==================== MIDDLEWARE ====================

// Limit returns a middleware enforcing the named endpoint config. Keys
// combine the endpoint type with the caller identity: the authenticated user
// when present, otherwise the client IP.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := svc.getConfig(endpointType)
		if cfg == nil || !cfg.IsActive {
			return c.Next()
		}

		key := svc.limitKey(c, endpointType)

		count, err := svc.redisSvc.Increment(c.Context(), key)
		if err != nil {
			// Redis being down should not take the API with it
			log.Printf("Rate limit counter failed for %s: %v", key, err)
			return c.Next()
		}

		if count == 1 {
			if err := svc.redisSvc.Expire(c.Context(), key, cfg.WindowSize); err != nil {
				log.Printf("Rate limit expiry failed for %s: %v", key, err)
			}
		}

		if count > int64(cfg.MaxRequests) {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests, slow down", nil)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) limitKey(c *fiber.Ctx, endpointType string) string {
	identity := c.IP()
	if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
		identity = userID
	}
	identity = strings.ReplaceAll(identity, ":", "_")
	return fmt.Sprintf("rate_limit:%s:%s", endpointType, identity)
}
