package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrisdamba/foodwaste/internal/logging"
	"github.com/chrisdamba/foodwaste/internal/models"
)

var (
	cfgFile      string
	resultFormat string
	cfg          *models.Config
)

var rootCmd = &cobra.Command{
	Use:   "foodwaste",
	Short: "Correlates restaurant delivery efficiency with food waste",
	Long: `foodwaste is a batch analytics CLI. It aggregates delivery logs into per-restaurant
metrics, scores delivery efficiency, integrates the food waste datasets and reports
how efficiency correlates with waste. Without a subcommand it runs every stage.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPipeline,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./foodwaste.yaml or ./config/foodwaste.yaml)")
	flags.StringVar(&resultFormat, "format", "json", "Result output format (json or yaml)")
	flags.String("data-dir", "data", "Directory holding input and output tables")
	flags.String("source", models.SourceCSV, "Input source (csv or postgres)")
	flags.StringSlice("output-formats", []string{models.FormatCSV}, "Output table formats (csv, parquet)")
	flags.String("output-destination", models.DestinationLocal, "Output destination (local or s3)")
	flags.Bool("kafka-enabled", false, "Publish analysis results to Kafka")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	flags.String("kafka-topic", "efficiency_waste_analysis", "Kafka topic for analysis results")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console or json)")

	bindFlags(rootCmd, map[string]string{
		"data_dir":           "data-dir",
		"source":             "source",
		"output_formats":     "output-formats",
		"output_destination": "output-destination",
		"kafka_enabled":      "kafka-enabled",
		"kafka_broker_list":  "kafka-broker-list",
		"kafka_topic":        "kafka-topic",
		"log_level":          "log-level",
		"log_format":         "log-format",
	})
}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			flag = cmd.Flags().Lookup(name)
		}
		cobra.CheckErr(viper.BindPFlag(key, flag))
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = models.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
