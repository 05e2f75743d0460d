package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkg "git.solsynth.dev/hypernet/chainpoll/pkg/internal"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/cache"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/config"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/http"
	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _           _                   _ _\n / ___| |__   __ _(_)_ __  _ __   ___ | | |\n| |   | '_ \\ / _` | | '_ \\| '_ \\ / _ \\| | |\n| |___| | | | (_| | | | | | |_) | (_) | | |\n \\____|_| |_|\\__,_|_|_| |_| .__/ \\___/|_|_|\n                          |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Chainpoll"), pkg.AppVersion)
	fmt.Printf("The on-chain poll reader in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Load settings
	config.LoadDotenv(".env", "../.env")
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading settings.")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if len(cfg.ContractAddress) == 0 {
		log.Warn().Msg("No default contract address configured, requests must pass ?address=")
	}

	// Connect to chain
	client, err := chain.Dial(cfg.RpcURL)
	if err != nil {
		log.Fatal().Err(err).Str("rpc", cfg.RpcURL).Msg("An error occurred when connecting to rpc endpoint...")
	}
	defer client.Close()
	log.Info().Str("rpc", cfg.RpcURL).Int("chain", chain.CronosTestnetID).Msg("Chain client is ready.")

	// Local cache
	store, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache store...")
	}
	defer store.Close()

	reader := services.NewPollReader(client)
	reader.MaxConcurrentReads = cfg.MaxConcurrentReads

	prober := services.NewChainProber(client, store, chain.CronosTestnetID, 2*probeInterval(cfg.ProbeSchedule))

	// Grpc health
	grpcServer := grpc.NewGrpc(cfg.GrpcBind)
	prober.Listeners = append(prober.Listeners, grpcServer.UpdateChainStatus)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(cfg.ProbeSchedule, prober.DoChainProbeTask); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ProbeSchedule).Msg("An error occurred when scheduling chain probe...")
	}
	quartz.Start()
	go prober.DoChainProbeTask()

	// Server
	server := http.NewServer(cfg, reader, prober)
	go server.Listen()

	go func() {
		if err := grpcServer.Listen(); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	grpcServer.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down http server...")
	}
}

// probeInterval estimates the gap between two probe runs to size the
// cache expiration of the last result.
func probeInterval(schedule string) time.Duration {
	parsed, err := cron.ParseStandard(schedule)
	if err != nil {
		return 5 * time.Minute
	}
	now := time.Now()
	next := parsed.Next(now)
	return parsed.Next(next).Sub(next)
}
