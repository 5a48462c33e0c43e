package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mgobeaalcoba/payflow-service/internal/adapters"
	"github.com/Mgobeaalcoba/payflow-service/internal/config"
	"github.com/Mgobeaalcoba/payflow-service/internal/controller"
	"github.com/Mgobeaalcoba/payflow-service/internal/core"
	"github.com/Mgobeaalcoba/payflow-service/internal/metrics"
	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
	"github.com/Mgobeaalcoba/payflow-service/internal/repository"
	"github.com/Mgobeaalcoba/payflow-service/internal/service"
	"github.com/Mgobeaalcoba/payflow-service/internal/txlog"
)

func main() {
	// Setup
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	//Load configurations
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Metrics
	metrics.Register()

	// Append-only transaction log
	logFile, err := txlog.Open(cfg.TransactionLogPath)
	if err != nil {
		log.Fatal("Failed to open transaction log: ", err)
	}
	defer logFile.Close()

	// Structured record store
	var recorder ports.ITransactionRecorder
	switch cfg.StoreBackend {
	case "postgres":
		connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=180",
			cfg.DbUser,
			cfg.DbPassword,
			cfg.DbHost,
			cfg.DbPort,
			cfg.DbName,
			cfg.SSLMode,
		)

		pool, err := config.InitPostgresPool(connString)
		if err != nil {
			log.Fatal("Failed to initialize database: ", err)
		}
		defer pool.Close()

		recorder = repository.NewPostgresRecorder(pool)
	case "bolt":
		boltStore, err := repository.NewBoltRecorder(cfg.BoltPath)
		if err != nil {
			log.Fatal("Failed to open bolt store: ", err)
		}
		defer boltStore.Close()

		recorder = boltStore
	default:
		log.Fatalf("Unknown store backend %q", cfg.StoreBackend)
	}

	// Declare providers
	const stripe model.PaymentProvider = "stripe"

	// Initialize gateways
	gatewayRegistry := core.NewGatewayRegistry()
	gatewayRegistry.Register(stripe, adapters.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret))

	// Initialize notification channels
	channelRegistry := core.NewChannelRegistry()
	channelRegistry.Register(adapters.NewEmailChannel(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword))
	channelRegistry.Register(adapters.NewSMSChannel(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioMessagingServiceSID))

	// Setup pipeline
	pipeline := service.NewTransactionPipeline(gatewayRegistry, channelRegistry, logFile, recorder)
	transactionController := controller.NewTransactionController(pipeline)

	// Router
	r := chi.NewRouter()
	r.Post("/transactions/{provider}", transactionController.ProcessTransaction)
	r.Post("/webhooks/{provider}", transactionController.ParseWebhook)

	r.Get("/transactions/health", transactionController.GetHealthCheck)
	r.Get("/transactions/{id}", transactionController.GetTransaction)
	r.Handle("/metrics", promhttp.Handler())

	// Start server
	log.Printf("Server running on :%d", cfg.Port)
	http.ListenAndServe(":"+strconv.Itoa(cfg.Port), r)
}
