package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-hukum-web/internal/config"
	"ai-hukum-web/internal/controller"
	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/internal/repository/memory"
	"ai-hukum-web/internal/service"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/legalapi"

	pktNats "ai-hukum-web/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	HomeController    controller.IHomeController
	DraftController   controller.IDraftController
	ReviewController  controller.IReviewController
	HistoryController controller.IHistoryController
	PageController    controller.IPageController

	Visitors *memory.VisitorRepository
	Logger   logger.ILogger

	// Background Services (Exposed for main.go to run)
	ActivityService service.IActivityService

	closers []func()
}

// Options lets tests swap infrastructure.
type Options struct {
	// Backend overrides the legal API client.
	Backend service.LegalBackend
	// Logger overrides the system logger.
	Logger logger.ILogger
	// SkipExternal disables Redis and NATS.
	SkipExternal bool
}

func NewContainer(cfg *config.Config, opts Options) *Container {
	// 1. Core Facades
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}

	backend := opts.Backend
	if backend == nil {
		backend = legalapi.NewClient(cfg.Backend.BaseURL)
	}

	c := &Container{Logger: sysLogger}

	// 2. Infrastructure
	var rdb *redis.Client
	var forwarder service.EventForwarder
	if !opts.SkipExternal {
		rdb = connectRedis(cfg.App.RedisURL)
		if rdb != nil {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}

		if cfg.App.NatsURL != "" {
			natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Activity.Topic)
			if err != nil {
				log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			} else {
				forwarder = natsPub
				c.closers = append(c.closers, natsPub.Close)
			}
		}
	}

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var activitySink logger.ILogger = logger.NewNopLogger()
	if !opts.SkipExternal {
		activitySink = logger.NewIsolatedLogger(cfg.Activity.LogPath)
	}
	activityService := service.NewActivityService(pubSub, cfg.Activity.Topic, activitySink, forwarder, sysLogger)

	// 4. Services
	uploadService := service.NewUploadService(backend, activityService, sysLogger)
	draftService := service.NewDraftService(backend, activityService, sysLogger)
	reviewService := service.NewReviewService(backend, activityService, sysLogger)
	historyService := service.NewHistoryService(backend, activityService, sysLogger)
	localeService := service.NewLocaleService(activityService, sysLogger)

	// 5. Visitors
	catalog := i18n.MustCatalog()
	c.Visitors = memory.NewVisitorRepository(
		time.Duration(cfg.App.VisitorTTLMinutes)*time.Minute,
		localeFactory(catalog, rdb, cfg.Locale.PrefsKey, i18n.Locale(cfg.Locale.Default)),
		localeService.Track,
	)

	// 6. Controllers
	c.HomeController = controller.NewHomeController(uploadService, historyService)
	c.DraftController = controller.NewDraftController(draftService)
	c.ReviewController = controller.NewReviewController(reviewService)
	c.HistoryController = controller.NewHistoryController(historyService)
	c.PageController = controller.NewPageController(localeService)
	c.ActivityService = activityService

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (locale kept in memory)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// localeFactory persists each visitor's locale in Redis when available and
// in process memory otherwise. Visitors without a saved choice start on
// fallback.
func localeFactory(catalog *i18n.Catalog, rdb *redis.Client, prefix string, fallback i18n.Locale) memory.LocaleFactory {
	prefs := cache.New(cache.NoExpiration, 0)
	return func(ctx context.Context, visitorID string) *i18n.Store {
		key := prefix + visitorID
		var p i18n.Persister
		if rdb != nil {
			p = i18n.NewRedisPersister(rdb, key)
		} else {
			p = i18n.NewMemoryPersister(prefs, key)
		}
		return i18n.NewStoreWithFallback(ctx, catalog, p, fallback)
	}
}
