package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ideamans/go-sheetstore/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the store as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := buildStore(cmd.Context())
		if err != nil {
			return err
		}

		server := api.NewServer(store, log.StandardLogger())
		log.WithField("addr", serveAddr).Info("listening")
		return http.ListenAndServe(serveAddr, server.Router())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}
