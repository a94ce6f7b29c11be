package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"iotplatform"
	"iotplatform/internal/api/handler/endpoints"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/service"
	"iotplatform/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

const livenessWorkers = 4

func main() {
	iotplatform.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if iotplatform.GetConfig().Mode == "dev" {
		pkg.AssertNoError(iotplatform.Logger, iotplatform.DB.AutoMigrate(models.All()...), "Failed to migrate database")
		iotplatform.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(iotplatform.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(middleware.RequestID(iotplatform.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     iotplatform.GetConfig().AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if iotplatform.Nats != nil {
		telemetry := service.NewTelemetryService()
		pkg.AssertNoError(iotplatform.Logger, telemetry.Start(iotplatform.Nats), "Failed to start telemetry ingest")
		defer telemetry.Stop()
	} else {
		iotplatform.Logger.Warn().Msg("NATS_URL not set, device messaging disabled")
	}

	liveness := service.NewDeviceLivenessService(livenessWorkers)
	liveness.Start()
	defer liveness.Stop()

	initAPI(router)

	iotplatform.Logger.Debug().Msgf("Starting CORE API on port %s", iotplatform.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		iotplatform.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful) {
	endpoints.CodeHandler(router)
	endpoints.ProjectHandler(router)
	endpoints.DeviceHandler(router)
	endpoints.AIModelHandler(router)
	endpoints.TutorialHandler(router)
	endpoints.UserHandler(router)
}
