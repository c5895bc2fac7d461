package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/edube-platform/edube_api/middleware"
	"github.com/edube-platform/edube_api/services"
)

// @title Edube API
// @version 1.0
// @description Online course marketplace API
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	httpSvc := &services.HttpService{}
	authMiddleware := &middleware.AuthMiddleware{}
	httpSvc.SetAuthProvider(authMiddleware)

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},
		authMiddleware,
		&services.AuthService{},
		&services.CatalogService{},
		&services.EnrollmentService{},
		&services.ProgressService{},
		&services.ReviewService{},
		&services.MediaService{},
		&services.RateLimitService{},
		&services.MonitoringService{},

		httpSvc,
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
