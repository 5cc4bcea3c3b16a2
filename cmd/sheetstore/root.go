// Root command for the sheetstore CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/adapters/excel"
	"github.com/ideamans/go-sheetstore/adapters/googlesheets"
)

// Global flag values.
var (
	flagConfigFile  string
	flagBackend     string
	flagSpreadsheet string
	flagCredentials string
	flagFile        string
	flagSheet       string
	flagVerbose     bool
)

// cfg holds the merged configuration: flags over environment over
// config file.
var cfg *viper.Viper

var rootCmd = &cobra.Command{
	Use:          "sheetstore",
	Short:        "Sheetstore is a record store over a spreadsheet range",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})

		var err error
		cfg, err = loadConfig(cmd)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./sheetstore.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend: googlesheets or excel")
	rootCmd.PersistentFlags().StringVar(&flagSpreadsheet, "spreadsheet", "", "Google spreadsheet ID")
	rootCmd.PersistentFlags().StringVar(&flagCredentials, "credentials", "", "path to service account JSON key")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "path to Excel workbook")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "sheet name to operate on")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig merges the optional YAML config file, SHEETSTORE_*
// environment variables and command line flags, flags winning.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, "googlesheets")

	if flagConfigFile != "" {
		v.SetConfigFile(flagConfigFile)
	} else {
		v.SetConfigName("sheetstore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SHEETSTORE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is not an error.
	}

	bindings := map[string]string{
		cfgKeyBackend:     "backend",
		cfgKeySpreadsheet: "spreadsheet",
		cfgKeyCredentials: "credentials",
		cfgKeyFile:        "file",
		cfgKeySheet:       "sheet",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	return v, nil
}

// Config keys.
const (
	cfgKeyBackend     = "backend"
	cfgKeySpreadsheet = "spreadsheet_id"
	cfgKeyCredentials = "credentials"
	cfgKeyFile        = "file"
	cfgKeySheet       = "sheet"
)

// buildStore constructs the store for the configured backend.
func buildStore(ctx context.Context) (*sheetstore.Store, error) {
	sheet := cfg.GetString(cfgKeySheet)
	if sheet == "" {
		return nil, fmt.Errorf("sheet name is required (--sheet)")
	}

	var transport sheetstore.Transport
	switch backend := cfg.GetString(cfgKeyBackend); backend {
	case "googlesheets":
		gsConfig := googlesheets.Config{
			SpreadsheetID: cfg.GetString(cfgKeySpreadsheet),
		}
		credentials := cfg.GetString(cfgKeyCredentials)
		var (
			client *googlesheets.Client
			err    error
		)
		if credentials != "" {
			client, err = googlesheets.NewWithJSONKeyFile(ctx, gsConfig, credentials)
		} else {
			client, err = googlesheets.NewWithDefaultCredentials(ctx, gsConfig)
		}
		if err != nil {
			return nil, fmt.Errorf("create Google Sheets transport: %w", err)
		}
		transport = client

	case "excel":
		adapter, err := excel.New(&excel.Config{
			FilePath: cfg.GetString(cfgKeyFile),
		})
		if err != nil {
			return nil, fmt.Errorf("create Excel transport: %w", err)
		}
		transport = adapter

	default:
		return nil, fmt.Errorf("unknown backend %q (want googlesheets or excel)", backend)
	}

	return sheetstore.New(transport, sheet, &sheetstore.Options{
		Logger: log.StandardLogger(),
	}), nil
}
