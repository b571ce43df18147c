package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type consumers struct {
	OrderSaverGroup       string `mapstructure:"order_saver_group"`
	EstimateArchiverGroup string `mapstructure:"estimate_archiver_group"`
}

type topics struct {
	EstimateEvents     string `mapstructure:"estimate_events"`
	PlacedOrders       string `mapstructure:"placed_orders"`
	EstimateStatsTable string `mapstructure:"estimate_stats_table"`
}

type tlsFiles struct {
	CACert     string `mapstructure:"ca_cert"`
	ClientCert string `mapstructure:"client_cert"`
	ClientKey  string `mapstructure:"client_key"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
}

type shipping struct {
	QuoteLatency  time.Duration `mapstructure:"quote_latency"`
	PaymentPrefix string        `mapstructure:"payment_prefix"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	HDFSNamenode   string     `mapstructure:"hdfs_namenode"`
	CatalogFile    string     `mapstructure:"catalog_file"`
	Shipping       shipping   `mapstructure:"shipping"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	HDFSNamenode=%q
	CatalogFile=%q

	ShippingConfig:
	QuoteLatency=%q
	PaymentPrefix=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		EstimateEvents=%q
		PlacedOrders=%q
		EstimateStatsTable=%q
	Consumers:
		OrderSaverGroup=%q
		EstimateArchiverGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.HDFSNamenode,
		c.CatalogFile,
		c.Shipping.QuoteLatency,
		c.Shipping.PaymentPrefix,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.EstimateEvents,
		c.Broker.Topics.PlacedOrders,
		c.Broker.Topics.EstimateStatsTable,
		c.Broker.Consumers.OrderSaverGroup,
		c.Broker.Consumers.EstimateArchiverGroup,
	)
}
