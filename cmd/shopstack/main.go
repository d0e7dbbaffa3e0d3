package main

import (
	"context"
	"fmt"

	"github.com/mehtaam/shopstack/internal/adapter/auth"
	"github.com/mehtaam/shopstack/internal/adapter/config"
	"github.com/mehtaam/shopstack/internal/adapter/handler/http"
	"github.com/mehtaam/shopstack/internal/adapter/logger"
	"github.com/mehtaam/shopstack/internal/adapter/rabbit"
	"github.com/mehtaam/shopstack/internal/adapter/storage"
	"github.com/mehtaam/shopstack/internal/adapter/storage/repository"
	"github.com/mehtaam/shopstack/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New(conf.Token)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	if conf.Rabbit.URL != "" {
		broker, err := rabbit.NewBroker(conf.Rabbit, log.Named("Rabbit"))
		if err != nil {
			log.Error("rabbit broker creating error", zap.Error(err))
			return
		}
		defer broker.Close()

		if err := rabbit.StartConsumers(ctx, broker, svc); err != nil {
			log.Error("rabbit consumers starting error", zap.Error(err))
			return
		}
	} else {
		log.Warn("rabbit url is empty, message intake disabled")
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	rewardHandler, err := http.NewRewardHandler(svc, log.Named("Reward handler"))
	if err != nil {
		log.Error("reward handler creating error", zap.Error(err))
		return
	}
	catalogueHandler, err := http.NewCatalogueHandler(svc, log.Named("Catalogue handler"))
	if err != nil {
		log.Error("catalogue handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		userHandler, orderHandler, rewardHandler, catalogueHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
