package bootstrap

import (
	"context"
	"log"
	"time"

	"intellilab-gc-be/internal/config"
	"intellilab-gc-be/internal/controller"
	"intellilab-gc-be/internal/handler"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/mailer"
	"intellilab-gc-be/internal/pkg/metrics"
	"intellilab-gc-be/internal/repository/memory"
	"intellilab-gc-be/internal/repository/rediscache"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/internal/service"
	"intellilab-gc-be/internal/websocket"
	"intellilab-gc-be/pkg/blob"
	"intellilab-gc-be/pkg/database"
	"intellilab-gc-be/pkg/events"
	"intellilab-gc-be/pkg/insight"
	"intellilab-gc-be/pkg/labevents"
	pktNats "intellilab-gc-be/pkg/nats"
	"intellilab-gc-be/pkg/ocr"
	"intellilab-gc-be/pkg/training"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	InstrumentController  controller.IInstrumentController
	MethodController      controller.IMethodController
	CompoundController    controller.ICompoundController
	SampleController      controller.ISampleController
	CostController        controller.ICostController
	CalibrationController controller.ICalibrationController
	InsightController     controller.IInsightController
	OCRController         controller.IOCRController
	SimulatorController   controller.ISimulatorController
	DashboardController   controller.IDashboardController
	BrandingController    controller.IBrandingController
	LimsController        controller.ILimsController
	TrainingController    controller.ITrainingController
	AdminController       controller.IAdminController

	// Live feed
	LiveFeedHandler *handler.LiveFeedHandler
	WebSocketHub    *websocket.Hub

	Logger  logger.ILogger
	Metrics *metrics.Metrics

	// Background work started by Start
	consumerService  service.IConsumerService
	insightService   service.IInsightService
	dashboardService service.IDashboardService
	natsPub          *pktNats.Publisher
	natsSub          *pktNats.Subscriber
	rdb              *redis.Client
	refreshSchedule  string
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	db = db.Session(&gorm.Session{Logger: database.NewGormLogger(sysLogger, cfg.Database.SlowQuery)})
	uowFactory := unitofwork.NewRepositoryFactory(db)
	m := metrics.New()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. In-process insight topic
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	var bus labevents.Bus
	if natsPub != nil {
		bus = natsPub
	}
	labEvents := labevents.NewBusPublisher(bus, sysLogger)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. KPI snapshots and live feed stay local", err)
		rdb.Close()
		rdb = nil
	}
	cancel()

	var shared service.SharedSnapshotStore
	if rdb != nil {
		shared = rediscache.NewSnapshotRepository(rdb, cfg.Dashboard.SnapshotTTL)
	}

	// Blob storage for uploaded chromatograms
	blobs, err := blob.Open(context.Background(), cfg.Blob)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open blob store (%s): %v", cfg.Blob.Driver, err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.HubLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 4. Services
	auditService := service.NewAuditService(uowFactory, sysLogger)
	publisherService := service.NewPublisherService(service.InsightTopic, pubSub)
	insightFeed := service.NewInsightFeed(publisherService, sysLogger)

	engine := insight.NewEngine(insight.Thresholds{
		InjectorTemperature: cfg.Insight.InjectorTemperature,
		InjectorHealth:      cfg.Insight.InjectorHealth,
		ColumnTemperature:   cfg.Insight.ColumnTemperature,
		ColumnHealth:        cfg.Insight.ColumnHealth,
		LongRunMinutes:      cfg.Insight.LongRunMinutes,
		CostPerSample:       cfg.Insight.CostPerSample,
		CriticalHealth:      cfg.Insight.CriticalHealth,
		MaintenanceSpend:    cfg.Insight.MaintenanceSpend,
	})
	aggregator := insight.NewAggregator(engine, cfg.Insight.Debounce)
	insightService := service.NewInsightService(
		uowFactory,
		aggregator,
		insightFeed,
		labEvents,
		m,
		emailService,
		cfg.SMTP.AlertTo,
		wsHub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, service.InsightTopic, insightService, sysLogger)

	instrumentService := service.NewInstrumentService(uowFactory, auditService, insightFeed)
	methodService := service.NewMethodService(uowFactory, auditService, insightFeed)
	compoundService := service.NewCompoundService(uowFactory, auditService)
	sampleService := service.NewSampleService(uowFactory, auditService, labEvents)
	costService := service.NewCostService(uowFactory, auditService, insightFeed)
	calibrationService := service.NewCalibrationService(uowFactory, auditService, labEvents, m)

	analyzer := ocr.NewAnalyzer(ocr.NewHTTPEngine(cfg.OCR.EngineURL, cfg.OCR.Timeout), ocr.NewCache(cfg.OCR.CacheTTL))
	ocrService := service.NewOCRService(uowFactory, analyzer, blobs, auditService, labEvents, m, sysLogger, cfg.OCR.MaxUploadBytes)

	dashboardService := service.NewDashboardService(
		uowFactory,
		insightService,
		memory.NewSnapshotRepository(cfg.Dashboard.SnapshotTTL),
		shared,
		wsHub,
		m,
		sysLogger,
	)

	catalog, err := training.LoadCatalog(cfg.Training.CatalogPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load training catalog: %v", err)
	}

	brandingService := service.NewBrandingService(uowFactory, auditService)
	limsService := service.NewLimsService(uowFactory, auditService)
	trainingService := service.NewTrainingService(catalog, auditService)
	simulatorService := service.NewSimulatorService()
	adminService := service.NewAdminService(auditService, sysLogger)

	// 5. Controllers
	return &Container{
		InstrumentController:  controller.NewInstrumentController(instrumentService),
		MethodController:      controller.NewMethodController(methodService),
		CompoundController:    controller.NewCompoundController(compoundService),
		SampleController:      controller.NewSampleController(sampleService),
		CostController:        controller.NewCostController(costService),
		CalibrationController: controller.NewCalibrationController(calibrationService),
		InsightController:     controller.NewInsightController(insightService),
		OCRController:         controller.NewOCRController(ocrService),
		SimulatorController:   controller.NewSimulatorController(simulatorService),
		DashboardController:   controller.NewDashboardController(dashboardService),
		BrandingController:    controller.NewBrandingController(brandingService),
		LimsController:        controller.NewLimsController(limsService),
		TrainingController:    controller.NewTrainingController(trainingService),
		AdminController:       controller.NewAdminController(adminService, cfg.App.JwtSecret),

		LiveFeedHandler: handler.NewLiveFeedHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,

		Logger:  sysLogger,
		Metrics: m,

		consumerService:  consumerService,
		insightService:   insightService,
		dashboardService: dashboardService,
		natsPub:          natsPub,
		natsSub:          natsSub,
		rdb:              rdb,
		refreshSchedule:  cfg.Dashboard.RefreshSchedule,
	}
}

// Start launches the hub, the insight consumer, the KPI schedule and the
// NATS subscription. It returns once everything is running.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.consumerService.Consume(ctx); err != nil {
		return err
	}

	if err := c.insightService.Warm(ctx); err != nil {
		c.Logger.Warn("BOOT", "Failed to warm insight aggregator", map[string]interface{}{"error": err.Error()})
	}

	if err := c.dashboardService.Start(c.refreshSchedule); err != nil {
		return err
	}

	if c.natsSub != nil {
		err := c.natsSub.Subscribe(ctx, "dashboard-kpis", c.dashboardService.HandleEvent,
			events.SampleStatusChanged, events.CalibrationCompleted, events.InsightsRegenerated)
		if err != nil {
			c.Logger.Warn("BOOT", "Failed to subscribe dashboard to lab events", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (c *Container) Close() {
	c.dashboardService.Stop()
	c.insightService.Close()
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
	_ = c.Logger.Sync()
}
