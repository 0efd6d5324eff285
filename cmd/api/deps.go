package main

import (
	"log"

	"tally/internal/domain/category"
	"tally/internal/domain/stats"
	"tally/internal/domain/transaction"
	"tally/internal/infrastructure/events"
	"tally/internal/infrastructure/postgres"
	httphandlers "tally/internal/interfaces/http"
	"tally/internal/shared/auth"
	"tally/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB     *postgres.DB
	Events *events.Publisher

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	StatsHandler       *httphandlers.StatsHandler
	HealthHandler      *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Initialize event publisher if configured
	var publisher *events.Publisher
	var eventSink transaction.EventPublisher
	if cfg.AMQP.Enabled() {
		publisher, err = events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			db.Close()
			return nil, err
		}
		eventSink = publisher
		log.Printf("Connected to AMQP broker (exchange=%s)", cfg.AMQP.Exchange)
	} else {
		log.Println("AMQP publishing is disabled")
	}

	// Initialize domain services
	categoryService := category.NewService(categoryRepo)
	transactionService := transaction.NewService(transactionRepo, categoryRepo, eventSink)
	statsService := stats.NewService(transactionRepo)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize handlers
	return &Dependencies{
		DB:                 db,
		Events:             publisher,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		UserHandler:        httphandlers.NewUserHandler(userRepo, jwt),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		StatsHandler:       httphandlers.NewStatsHandler(statsService),
		HealthHandler:      httphandlers.NewHealthHandler(db),
		JWT:                jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Events != nil {
		d.Events.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
