package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cercle-be/internal/category"
	"cercle-be/internal/config"
	"cercle-be/internal/db"
	"cercle-be/internal/httpx"
	"cercle-be/internal/logger"
	"cercle-be/internal/mailer"
	"cercle-be/internal/membership"
	"cercle-be/internal/order"
	"cercle-be/internal/penne"
	"cercle-be/internal/pin"
	"cercle-be/internal/pinrequest"
	"cercle-be/internal/upload"
	"cercle-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	files, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to init upload store", zap.Error(err))
	}

	mail := mailer.NewSMTPMailer(cfg)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, mail, cfg.BaseURL)

	pinRepo := pin.NewRepository(database)
	pinSvc := pin.NewService(pinRepo, files)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo, pinRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, pinSvc)

	membershipRepo := membership.NewRepository(database)
	membershipSvc := membership.NewService(membershipRepo)

	pinRequestRepo := pinrequest.NewRepository(database)
	pinRequestSvc := pinrequest.NewService(pinRequestRepo, files)

	penneRepo := penne.NewRepository(database)
	penneSvc := penne.NewService(penneRepo)

	router := httpx.NewRouter(httpx.Handlers{
		Auth:        httpx.NewAuthHandler(userSvc),
		Users:       httpx.NewUserHandler(userSvc),
		Pins:        httpx.NewPinHandler(pinSvc, files),
		Categories:  httpx.NewCategoryHandler(categorySvc),
		Orders:      httpx.NewOrderHandler(orderSvc),
		Memberships: httpx.NewMembershipHandler(membershipSvc),
		PinRequests: httpx.NewPinRequestHandler(pinRequestSvc, userSvc, files),
		Pennes:      httpx.NewPenneHandler(penneSvc, userSvc),
	}, cfg.UploadDir)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
