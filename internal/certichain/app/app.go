package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/challenge"
	httpapi "github.com/aussiebroadwan/certichain/internal/certichain/http"
	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/metadata"
	"github.com/aussiebroadwan/certichain/internal/certichain/metrics"
	"github.com/aussiebroadwan/certichain/internal/certichain/notify"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/internal/certichain/store/drivers/postgres"
	"github.com/aussiebroadwan/certichain/internal/certichain/store/drivers/sqlite"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
	"github.com/gagliardetto/solana-go"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the certichain service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	minter     ledger.Minter
	publisher  metadata.Publisher
	dispatcher notify.Dispatcher
	challenges challenge.Store
	sealer     *cryptox.Sealer
	metrics    *metrics.Metrics
	purgers    map[string]service.Purger

	// Services
	authService         *service.AuthService
	identityService     *service.IdentityService
	institutionService  *service.InstitutionService
	issuanceService     *service.IssuanceService
	certificateService  *service.CertificateService
	verificationService *service.VerificationService
	shareService        *service.ShareService
	notificationService *service.NotificationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every backend selected by cfg connected.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "certichain",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
		purgers: map[string]service.Purger{},
	}

	ctx := context.Background()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := app.initKeys()
	if err != nil {
		_ = app.closeAll()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	sealer, ephemeral, err := cryptox.LoadSealer(cfg.MasterKeyPath, cfg.MasterKey)
	if err != nil {
		_ = app.closeAll()
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	if ephemeral {
		app.logger.Warn("no master key configured, private attributes are sealed with an ephemeral key")
	}
	app.sealer = sealer

	for _, step := range []func(context.Context) error{
		app.initLedger,
		app.initPublisher,
		app.initDispatcher,
		app.initChallenges,
	} {
		if err := step(ctx); err != nil {
			_ = app.closeAll()
			return nil, err
		}
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("certichain starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"ledger", app.cfg.LedgerMode,
		"metadata", app.cfg.MetadataMode,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down certichain...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeAll(); err != nil {
		return err
	}

	app.logger.Info("certichain stopped")
	return nil
}

// closeAll releases the broker connection and the database. The database
// error, if any, is returned.
func (app *Application) closeAll() error {
	if app.dispatcher != nil {
		if err := app.dispatcher.Close(); err != nil {
			app.logger.Error("error closing dispatcher", "error", err)
		}
	}

	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initKeys loads the persistent session key when configured, otherwise
// generates ephemeral keys and sessions end with the process.
func (app *Application) initKeys() (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{Issuer: app.cfg.Issuer, NumKeys: app.cfg.NumKeys}

	if app.cfg.SessionKeyPath == "" {
		km, err := jwtx.NewEphemeralKeyManager(opts)
		if err != nil {
			return nil, err
		}
		app.logger.Info("ephemeral session keys generated", "num_keys", km.NumSigners())
		return km, nil
	}

	pemKey, created, err := cryptox.LoadOrCreateEd25519Key(app.cfg.SessionKeyPath)
	if err != nil {
		return nil, err
	}
	km, err := jwtx.NewKeyManagerFromPEM(pemKey, opts)
	if err != nil {
		return nil, err
	}
	app.logger.Info("persistent session key loaded",
		"path", app.cfg.SessionKeyPath,
		"created", created,
		"kid", km.GetSigner().KID(),
	)
	return km, nil
}

func (app *Application) initLedger(context.Context) error {
	if app.cfg.LedgerMode != "solana" {
		app.minter = ledger.NewDevMinter()
		app.logger.Warn("using in-process dev ledger, mints are not recorded on chain")
		return nil
	}

	programID, err := solana.PublicKeyFromBase58(app.cfg.SolanaProgramID)
	if err != nil {
		return fmt.Errorf("invalid solana program id: %w", err)
	}
	payer, err := ledger.LoadPayer(app.cfg.SolanaPayerKeypair)
	if err != nil {
		return fmt.Errorf("failed to load solana payer: %w", err)
	}

	app.minter = ledger.NewSolanaMinter(app.cfg.SolanaRPCURL, ledger.SolanaConfig{
		Network:        app.cfg.SolanaNetwork,
		ProgramID:      programID,
		Payer:          payer,
		ConfirmTimeout: app.cfg.SolanaConfirmTimeout,
	})
	app.logger.Info("solana ledger configured",
		"network", app.cfg.SolanaNetwork,
		"program_id", programID.String(),
		"payer", payer.PublicKey().String(),
	)
	return nil
}

func (app *Application) initPublisher(ctx context.Context) error {
	if app.cfg.MetadataMode != "s3" {
		app.publisher = metadata.NewMemoryPublisher(app.cfg.ContentGatewayURL)
		app.logger.Warn("using in-memory metadata publisher, documents are lost on restart")
		return nil
	}

	client, err := metadata.NewS3Client(ctx, app.cfg.S3Region, app.cfg.S3Endpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize s3 client: %w", err)
	}

	p := metadata.NewS3Publisher(client, metadata.S3Config{
		Bucket:      app.cfg.S3Bucket,
		Gateway:     app.cfg.ContentGatewayURL,
		MaxAttempts: app.cfg.PublishMaxAttempts,
	})
	p.OnRetry = app.metrics.PublishRetried
	app.publisher = p

	app.logger.Info("s3 metadata publisher configured", "bucket", app.cfg.S3Bucket, "endpoint", app.cfg.S3Endpoint)
	return nil
}

func (app *Application) initDispatcher(context.Context) error {
	if app.cfg.AMQPURL == "" {
		app.dispatcher = notify.LogDispatcher{}
		app.logger.Info("no broker configured, email dispatch is log only")
		return nil
	}

	d, err := notify.DialAMQP(app.cfg.AMQPURL, app.cfg.AMQPExchange)
	if err != nil {
		return fmt.Errorf("failed to initialize email dispatcher: %w", err)
	}
	app.dispatcher = d

	app.logger.Info("amqp email dispatcher connected", "exchange", app.cfg.AMQPExchange)
	return nil
}

func (app *Application) initChallenges(ctx context.Context) error {
	if app.cfg.RedisAddr == "" {
		mem := challenge.NewMemoryStore()
		app.challenges = mem
		app.purgers["challenges"] = mem
		return nil
	}

	client, err := challenge.NewRedisClient(ctx, app.cfg.RedisAddr, app.cfg.RedisPassword)
	if err != nil {
		return fmt.Errorf("failed to initialize challenge store: %w", err)
	}
	app.challenges = challenge.NewRedisStore(client)

	app.logger.Info("redis challenge store connected", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:        app.db,
		Challenges:   app.challenges,
		KeyManager:   app.keyManager,
		Issuer:       app.cfg.Issuer,
		ChallengeTTL: app.cfg.ChallengeTTL,
		SessionTTL:   app.cfg.SessionTTL,
	}
	app.identityService = &service.IdentityService{Store: app.db}
	app.institutionService = &service.InstitutionService{Store: app.db}
	app.issuanceService = &service.IssuanceService{
		Store:      app.db,
		Publisher:  app.publisher,
		Minter:     app.minter,
		Sealer:     app.sealer,
		Dispatcher: app.dispatcher,
		Metrics:    app.metrics,
	}
	app.certificateService = &service.CertificateService{Store: app.db}
	app.verificationService = &service.VerificationService{Store: app.db, Metrics: app.metrics}
	app.shareService = &service.ShareService{
		Store:       app.db,
		Dispatcher:  app.dispatcher,
		PublicURL:   app.cfg.PublicURL,
		DefaultDays: app.cfg.DefaultShareDays,
	}
	app.notificationService = &service.NotificationService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.logger,
		app.cfg.HousekeepingInterval,
		app.purgers,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.minter,
		app.publisher,
		app.metrics,
		app.logger,
	)

	router.AuthService = app.authService
	router.IdentityService = app.identityService
	router.InstitutionService = app.institutionService
	router.IssuanceService = app.issuanceService
	router.CertificateService = app.certificateService
	router.VerificationService = app.verificationService
	router.ShareService = app.shareService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
