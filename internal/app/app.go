package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/animatoon/storefront/config"
	"github.com/animatoon/storefront/internal/adapter/catalog"
	"github.com/animatoon/storefront/internal/adapter/httphandler"
	"github.com/animatoon/storefront/internal/adapter/kafka"
	"github.com/animatoon/storefront/internal/adapter/payment"
	"github.com/animatoon/storefront/internal/adapter/storage"
	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/service"
	"github.com/animatoon/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	estimateEvent schema.Serde
	placedOrder   schema.Serde
}

type producers struct {
	estimateEvents kafka.EstimateEventsProducer
	orders         kafka.OrdersProducer
}

type consumers struct {
	orders         kafka.OrdersConsumer
	estimateEvents kafka.EstimateEventsConsumer
}

type storages struct {
	sqldb  storage.SQLDB
	hdfs   storage.HDFS
	orders storage.OrdersRepository
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsConfig  *tls.Config
	serdes     serdes
	producers  producers
	consumers  consumers
	storages   storages
	service    *service.Service
	statsProc  *kafka.EstimateStatsProc
	statsView  *kafka.EstimateStatsView
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTLSConfig()
	app.initSerdes()
	app.initStorages()
	app.initProducers()
	app.initStatsAdapters()
	app.initCoreService()
	app.initConsumers()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLSConfig() {
	const op = "App.initTLSConfig"

	tlsFiles := app.cfg.Broker.TLS
	if tlsFiles.CACert == "" {
		return
	}

	tlsConfig, err := kafka.MakeTLSConfig(
		tlsFiles.CACert, tlsFiles.ClientCert, tlsFiles.ClientKey,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsConfig = tlsConfig
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	estimateSS := app.cfg.Broker.Topics.EstimateEvents + "-value"
	estimateSerde, err := schema.NewSerdeEstimateEventV1(
		ctx,
		schema.SubjectOpt(estimateSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSS := app.cfg.Broker.Topics.PlacedOrders + "-value"
	orderSerde, err := schema.NewSerdePlacedOrderV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.estimateEvent = estimateSerde
	app.serdes.placedOrder = orderSerde
}

func (app *App) initStorages() {
	const op = "App.initStorages"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	hdfs, err := storage.NewHDFS(app.cfg.HDFSNamenode)
	if err != nil {
		app.fallDown(op, err)
	}

	app.storages.sqldb = sqldb
	app.storages.hdfs = hdfs
	app.storages.orders = storage.NewOrdersRepository(sqldb)
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	estimateEventsTopic := app.cfg.Broker.Topics.EstimateEvents
	placedOrdersTopic := app.cfg.Broker.Topics.PlacedOrders

	estimateEventsProducer, err := kafka.NewEstimateEventsProducer(
		ctx,
		kafka.ProducerClientOpt(
			ctx, seedBrokers, estimateEventsTopic, app.tlsConfig,
		),
		kafka.ProducerEncoderOpt(app.serdes.estimateEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(
			ctx, seedBrokers, placedOrdersTopic, app.tlsConfig,
		),
		kafka.ProducerEncoderOpt(app.serdes.placedOrder),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.estimateEvents = estimateEventsProducer
	app.producers.orders = ordersProducer
}

func (app *App) initStatsAdapters() {
	const op = "App.initStatsAdapters"

	seedBrokers := app.cfg.Broker.SeedBrokers
	estimateEventsTopic := app.cfg.Broker.Topics.EstimateEvents
	statsTable := app.cfg.Broker.Topics.EstimateStatsTable

	statsProc, err := kafka.NewEstimateStatsProc(
		seedBrokers, estimateEventsTopic, statsTable,
		app.serdes.estimateEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsView, err := kafka.NewEstimateStatsView(kafka.EstimateStatsViewConfig{
		SeedBrokers: seedBrokers,
		GroupTable:  statsTable,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.statsProc = statsProc
	app.statsView = statsView
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	products, err := catalog.Load(app.cfg.CatalogFile)
	if err != nil {
		app.fallDown(op, err)
	}

	referenceProvider := payment.NewReferenceProvider(
		app.cfg.Shipping.PaymentPrefix,
	)

	archive := storage.NewEstimateEventsRepository(app.storages.hdfs)

	s := service.New(service.Config{
		Catalog:        products,
		Payment:        referenceProvider,
		Rates:          domain.DefaultRatePolicy(),
		Latency:        app.cfg.Shipping.QuoteLatency,
		OrdersProducer: app.producers.orders,
		OrdersStorage:  app.storages.orders,
		Archive:        archive,
		StatsProc:      app.statsProc,
	})
	s.SubscribeEstimates(app.producers.estimateEvents)

	app.service = s
}

func (app *App) initConsumers() {
	const op = "App.initConsumers"

	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	groups := app.cfg.Broker.Consumers

	ordersConsumer, err := kafka.NewOrdersConsumer(
		kafka.ConsumerClientOpt(
			seedBrokers, topics.PlacedOrders,
			groups.OrderSaverGroup, app.tlsConfig,
		),
		kafka.ConsumerDecoderOpt(app.serdes.placedOrder),
		kafka.OrdersSaverOpt(app.service),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	estimateEventsConsumer, err := kafka.NewEstimateEventsConsumer(
		kafka.ConsumerClientOpt(
			seedBrokers, topics.EstimateEvents,
			groups.EstimateArchiverGroup, app.tlsConfig,
		),
		kafka.ConsumerDecoderOpt(app.serdes.estimateEvent),
		kafka.EstimateEventsSaverOpt(app.service),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.consumers.orders = ordersConsumer
	app.consumers.estimateEvents = estimateEventsConsumer
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service)
	httphandler.RegisterShipping(mux, app.service)
	httphandler.RegisterOrders(mux, app.service, app.service)
	httphandler.RegisterStats(mux, app.statsView)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.service.Run(app.ctx, stopFn)

	go app.consumers.orders.Run(app.ctx)
	go app.consumers.estimateEvents.Run(app.ctx)
	go app.statsView.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.consumers.orders.Close()
	app.consumers.estimateEvents.Close()
	app.service.Close()
	app.producers.estimateEvents.Close()
	app.producers.orders.Close()
	app.storages.hdfs.Close()
	app.storages.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
