package main

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/amelchenko/forumpay-gateway/internal/database"
	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	router "github.com/amelchenko/forumpay-gateway/internal/http"
	"github.com/amelchenko/forumpay-gateway/internal/logger"
	"github.com/amelchenko/forumpay-gateway/internal/models"
	"github.com/amelchenko/forumpay-gateway/internal/services"
	"github.com/amelchenko/forumpay-gateway/internal/utils"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	log.Printf("Running server on %s\n", config.endpoint)

	apiClient := forumpay.New(
		config.APIURL(),
		config.apiUser,
		config.apiSecret,
		fmt.Sprintf("fp-pgw[%s] gateway on %s", version, runtime.Version()),
		config.storeLocale,
		logger.Log,
	)

	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(apiClient, orderService, services.PaymentConfig{
		PosID:                   config.posID,
		AcceptZeroConfirmations: config.acceptZeroConf,
		OrderStateAfterPayment:  config.orderStateAfterPayment,
	})

	utils.HandleTerminationProcess(func() {
		db.Close()
	})

	var tokenService models.TokenService
	if config.widgetSecretKey != "" {
		tokenService = services.NewTokenService(config.widgetSecretKey)
	}

	router.New(
		router.Config{Endpoint: config.endpoint},
		paymentService,
		tokenService,
	).Run()
}
