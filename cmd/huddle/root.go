package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Full-mesh audio/video rooms coordinated over a signaling relay",
	Long: `huddle joins a shared room and keeps one direct peer-to-peer media
session per remote participant. The relay only carries signaling; media
flows between peers.`,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
