package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/handlers"
	"github.com/teka-store/api/internal/notify"
	"github.com/teka-store/api/internal/platform/config"
	"github.com/teka-store/api/internal/platform/jobs"
	"github.com/teka-store/api/internal/platform/observability"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories/docstore"
	"github.com/teka-store/api/internal/services"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	docStore, closeStore := newDocumentStore(logger, cfg)
	defer closeStore()

	orderRepo, err := docstore.NewOrderRepository(docstore.OrderRepositoryDeps{Store: docStore})
	if err != nil {
		logger.Fatal("failed to initialise order repository", zap.Error(err))
	}
	catalogRepo, err := docstore.NewCatalogRepository(docstore.CatalogRepositoryDeps{Store: docStore})
	if err != nil {
		logger.Fatal("failed to initialise catalog repository", zap.Error(err))
	}
	zoneRepo, err := docstore.NewZoneRepository(docstore.ZoneRepositoryDeps{Store: docStore})
	if err != nil {
		logger.Fatal("failed to initialise zone repository", zap.Error(err))
	}
	wishlistRepo, err := docstore.NewWishlistRepository(docstore.WishlistRepositoryDeps{Store: docStore})
	if err != nil {
		logger.Fatal("failed to initialise wishlist repository", zap.Error(err))
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{Repository: catalogRepo})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}
	cartService, err := services.NewCartService(services.CartServiceDeps{Catalog: catalogService})
	if err != nil {
		logger.Fatal("failed to initialise cart service", zap.Error(err))
	}
	zoneService, err := services.NewZoneService(services.ZoneServiceDeps{Repository: zoneRepo})
	if err != nil {
		logger.Fatal("failed to initialise zone service", zap.Error(err))
	}
	wishlistService, err := services.NewWishlistService(services.WishlistServiceDeps{Repository: wishlistRepo})
	if err != nil {
		logger.Fatal("failed to initialise wishlist service", zap.Error(err))
	}

	channels := buildChannels(logger, cfg)
	notifier, err := services.NewNotificationService(services.NotificationServiceDeps{Channels: channels})
	if err != nil {
		logger.Fatal("failed to initialise notification service", zap.Error(err))
	}

	publisher, closePublisher, err := newEventPublisher(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialise event publisher", zap.Error(err))
	}
	defer closePublisher()

	worker, err := services.NewNotificationWorker(services.NotificationWorkerDeps{
		Notifier:  notifier,
		Publisher: publisher,
		Logger:    logger.Named("notify"),
		QueueSize: cfg.Notifications.QueueSize,
	})
	if err != nil {
		logger.Fatal("failed to initialise notification worker", zap.Error(err))
	}

	workerCtx, stopWorker := context.WithCancel(ctx)
	worker.Start(workerCtx, cfg.Notifications.Workers)

	areaTiers := domain.DefaultAreaTiers()
	if cfg.Delivery.DefaultPrice > 0 {
		areaTiers.DefaultPrice = cfg.Delivery.DefaultPrice
	}

	orderService, err := services.NewOrderService(services.OrderServiceDeps{
		Orders:            orderRepo,
		Zones:             zoneRepo,
		Wishlists:         wishlistRepo,
		Cart:              cartService,
		Catalog:           catalogService,
		Queue:             worker,
		AreaTiers:         areaTiers,
		Logger:            logger.Named("orders"),
		StrictTransitions: cfg.Features.StrictStatusTransitions,
	})
	if err != nil {
		logger.Fatal("failed to initialise order service", zap.Error(err))
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:    logger.Named("http"),
		Orders:    orderService,
		Catalog:   catalogService,
		Zones:     zoneService,
		Wishlists: wishlistService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("teka-store api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	stopWorker()
	worker.Wait()
}

// newDocumentStore selects the persistence backend. The memory backend is
// seeded with the sample dataset unless STORE_SEED_ON_BOOT disables it.
func newDocumentStore(logger *zap.Logger, cfg config.Config) (store.DocumentStore, func()) {
	switch cfg.Store.Backend {
	case config.StoreBackendFirestore:
		fs := store.NewFirestoreStore(store.FirestoreConfig{
			ProjectID:    cfg.Store.ProjectID,
			EmulatorHost: cfg.Store.EmulatorHost,
		})
		logger.Info("using firestore backend", zap.String("project_id", cfg.Store.ProjectID))
		return fs, func() {
			if err := fs.Close(); err != nil {
				logger.Warn("firestore close error", zap.Error(err))
			}
		}
	case config.StoreBackendMemory:
	default:
		logger.Warn("unknown store backend; falling back to memory", zap.String("backend", cfg.Store.Backend))
	}

	if cfg.Store.SeedOnBoot {
		logger.Info("using seeded in-memory backend")
		return store.NewSeededMemoryStore(domain.DefaultSeedData()), func() {}
	}
	logger.Info("using empty in-memory backend")
	return store.NewMemoryStore(), func() {}
}

// buildChannels assembles the notification channel list. The WhatsApp
// deep-link channel is always available; Telegram joins when a bot token is
// configured.
func buildChannels(logger *zap.Logger, cfg config.Config) []services.Channel {
	channels := []services.Channel{
		services.NewWhatsAppLinkChannel(services.WhatsAppLinkChannelDeps{
			CountryCode: cfg.Telegram.CountryCode,
		}),
	}

	if cfg.Telegram.Enabled() {
		client, err := notify.NewTelegramClient(notify.TelegramClientDeps{
			BotToken:   cfg.Telegram.BotToken,
			APIBaseURL: cfg.Telegram.APIBaseURL,
			Timeout:    cfg.Telegram.Timeout,
		})
		if err != nil {
			logger.Fatal("failed to initialise telegram client", zap.Error(err))
		}
		channel, err := services.NewTelegramChannel(services.TelegramChannelDeps{
			Transport:   client,
			CountryCode: cfg.Telegram.CountryCode,
		})
		if err != nil {
			logger.Fatal("failed to initialise telegram channel", zap.Error(err))
		}
		channels = append(channels, channel)
	} else {
		logger.Info("telegram channel disabled; no bot token configured")
	}

	return channels
}

// newEventPublisher connects the order-event topic when Pub/Sub is
// configured. A nil publisher disables event mirroring.
func newEventPublisher(ctx context.Context, logger *zap.Logger, cfg config.Config) (services.OrderEventPublisher, func(), error) {
	if !cfg.PubSub.Enabled() {
		logger.Info("order event publishing disabled; no topic configured")
		return nil, func() {}, nil
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("pubsub client: %w", err)
	}
	topic := client.Topic(cfg.PubSub.Topic)
	publisher, err := jobs.NewPubSubOrderEventPublisher(topic)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	logger.Info("order events will be published",
		zap.String("project_id", cfg.PubSub.ProjectID),
		zap.String("topic", cfg.PubSub.Topic),
	)
	return publisher, func() {
		topic.Stop()
		if err := client.Close(); err != nil {
			logger.Warn("pubsub close error", zap.Error(err))
		}
	}, nil
}
