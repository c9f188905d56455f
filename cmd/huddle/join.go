package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	router "github.com/huddlekit/huddle/internal/adapters/http"
	"github.com/huddlekit/huddle/internal/adapters/media"
	"github.com/huddlekit/huddle/internal/adapters/rtc"
	sigclient "github.com/huddlekit/huddle/internal/adapters/signal"
	"github.com/huddlekit/huddle/internal/app"
	"github.com/huddlekit/huddle/internal/config"
	"github.com/huddlekit/huddle/internal/domain"
)

var (
	flagServer string
	flagName   string
	flagDebug  string
)

var joinCmd = &cobra.Command{
	Use:   "join <room-id>",
	Short: "Join a room and stay in the call until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(args[0])
	},
}

func init() {
	joinCmd.Flags().StringVar(&flagServer, "server", "", "signaling relay url (overrides config)")
	joinCmd.Flags().StringVar(&flagName, "name", "", "display name (overrides config)")
	joinCmd.Flags().StringVar(&flagDebug, "debug-addr", "", "serve the read-only snapshot API on this address")
	rootCmd.AddCommand(joinCmd)
}

func joinRoom(roomID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagName != "" {
		cfg.Name = flagName
	}
	if flagDebug != "" {
		cfg.DebugAddr = flagDebug
	}
	if cfg.Name == "" {
		cfg.Name = "guest"
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory, err := rtc.NewFactory(rtc.DefaultConfig(cfg.STUNServers))
	if err != nil {
		return err
	}
	source, err := media.NewStaticSource(cfg.Name)
	if err != nil {
		return err
	}

	client := sigclient.NewClient(cfg.ServerURL, cfg.PingPeriod, cfg.WriteWait)
	sess := app.NewSession(
		domain.RoomID(roomID),
		cfg.Name,
		client,
		factory,
		source,
		func() { log.Info().Str("room", roomID).Msg("admitted to room") },
	)
	client.SetHandler(sess)

	if err := client.Connect(); err != nil {
		return err
	}

	if cfg.DebugAddr != "" {
		srv := &http.Server{Addr: cfg.DebugAddr, Handler: router.SetupRouter(cfg, sess)}
		go func() {
			log.Info().Str("addr", cfg.DebugAddr).Msg("debug API started")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("debug API error")
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sess.Join()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	sess.Leave()
	return nil
}
