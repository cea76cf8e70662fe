package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	FormatCSV     = "csv"
	FormatParquet = "parquet"

	DestinationLocal = "local"
	DestinationS3    = "s3"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the connection string pgx expects.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type GeneratorConfig struct {
	Seed            int64     `mapstructure:"seed"`
	StartDate       time.Time `mapstructure:"start_date"`
	WasteRecords    int       `mapstructure:"waste_records"`
	FeedbackRecords int       `mapstructure:"feedback_records"`
	DeliveryRecords int       `mapstructure:"delivery_records"`
}

type Config struct {
	DataDir          string `mapstructure:"data_dir"`
	DeliveryLogsFile string `mapstructure:"delivery_logs_file"`
	MetadataFile     string `mapstructure:"metadata_file"`
	RawWasteFile     string `mapstructure:"raw_waste_file"`
	FeedbackFile     string `mapstructure:"feedback_file"`
	MenuFile         string `mapstructure:"menu_file"`
	MetricsFile      string `mapstructure:"metrics_file"`
	EfficiencyFile   string `mapstructure:"efficiency_file"`
	WasteFile        string `mapstructure:"waste_file"`
	LeaderboardFile  string `mapstructure:"leaderboard_file"`

	Source   string         `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`

	OutputFormats     []string           `mapstructure:"output_formats"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	Server ServerConfig `mapstructure:"server"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Generator GeneratorConfig `mapstructure:"generator"`
}

// SetDefaults registers every key so env overrides resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("delivery_logs_file", "Delivery_Logs.csv")
	v.SetDefault("metadata_file", "Restaurant_Metadata.csv")
	v.SetDefault("raw_waste_file", "Raleigh_Food_Waste__1-week_sample_.csv")
	v.SetDefault("feedback_file", "Customer_Feedback.csv")
	v.SetDefault("menu_file", "Menu_Portions.csv")
	v.SetDefault("metrics_file", "vendor_delivery_metrics.csv")
	v.SetDefault("efficiency_file", "vendor_efficiency_scores.csv")
	v.SetDefault("waste_file", "cleaned_master_dataset.csv")
	v.SetDefault("leaderboard_file", "restaurant_points.json")

	v.SetDefault("source", SourceCSV)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "foodwaste")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("output_formats", []string{FormatCSV})
	v.SetDefault("output_destination", DestinationLocal)
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.prefix", "")

	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "efficiency_waste_analysis")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.start_date", "2025-10-06T00:00:00Z")
	v.SetDefault("generator.waste_records", 300)
	v.SetDefault("generator.feedback_records", 250)
	v.SetDefault("generator.delivery_records", 350)
}

// LoadConfig initializes and reads the configuration using the global Viper
func LoadConfig(cfgFile string) (*Config, error) {
	return LoadConfigFrom(viper.GetViper(), cfgFile)
}

func LoadConfigFrom(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.SetConfigName("foodwaste")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOODWASTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Source {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("unsupported source: %s", cfg.Source)
	}
	for _, f := range cfg.OutputFormats {
		switch f {
		case FormatCSV, FormatParquet:
		default:
			return fmt.Errorf("unsupported output format: %s", f)
		}
	}
	switch cfg.OutputDestination {
	case DestinationLocal, DestinationS3:
	default:
		return fmt.Errorf("unsupported output destination: %s", cfg.OutputDestination)
	}
	if cfg.OutputDestination == DestinationS3 && cfg.CloudStorage.BucketName == "" {
		return fmt.Errorf("cloud_storage.bucket_name is required for s3 output")
	}
	return nil
}

// Path resolves a data file name against DataDir.
func (cfg *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.DataDir, name)
}

func (cfg *Config) HasFormat(format string) bool {
	for _, f := range cfg.OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
