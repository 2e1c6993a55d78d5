package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/castproof/cast-attestation-webhook/api/webhookhandler"
	"github.com/castproof/cast-attestation-webhook/attester"
	"github.com/castproof/cast-attestation-webhook/cmd/flags"
	"github.com/castproof/cast-attestation-webhook/common"
	"github.com/castproof/cast-attestation-webhook/config"
	"github.com/castproof/cast-attestation-webhook/eas"
	"github.com/castproof/cast-attestation-webhook/httpserver"
	"github.com/castproof/cast-attestation-webhook/metrics"
)

var (
	listenAddrFlag = &cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for API",
	}
	waitMinedFlag = &cli.BoolFlag{
		Name:  "wait-mined",
		Value: false,
		Usage: "wait for the attest transaction to be mined and return the attestation UID",
	}
)

func main() {
	app := &cli.App{
		Name:  "cast-attestation-webhook",
		Usage: "Serve the cast webhook and submit EAS attestations",
		Flags: append([]cli.Flag{
			listenAddrFlag,
			waitMinedFlag,
			flags.RpcAddrFlag,
			flags.EasAddressFlag,
			flags.SchemaUIDFlag,
		}, flags.CommonFlags...),
		Action: runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	easAddress := cCtx.String(flags.EasAddressFlag.Name)
	if !ethcommon.IsHexAddress(easAddress) {
		return fmt.Errorf("invalid eas-address: %s", easAddress)
	}
	schemaUID := cCtx.String(flags.SchemaUIDFlag.Name)
	if len(ethcommon.FromHex(schemaUID)) != ethcommon.HashLength {
		return fmt.Errorf("invalid schema-uid: %s", schemaUID)
	}

	// Secrets are loaded once; a missing signing key stops the process here.
	secrets, err := config.LoadSecrets()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		return err
	}

	rpcURL, err := secrets.RPCURL(cCtx.String(flags.RpcAddrFlag.Name))
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		return err
	}

	logger.Info("Connecting to Ethereum RPC")
	ethClient, err := ethclient.Dial(rpcURL)
	if err != nil {
		logger.Error("Failed to dial RPC", "err", err)
		return err
	}
	defer ethClient.Close()

	ctx, cancel := context.WithTimeout(cCtx.Context, 30*time.Second)
	auth, err := secrets.NewTransactOpts(ctx, ethClient)
	cancel()
	if err != nil {
		logger.Error("Failed to configure signer", "err", err)
		return err
	}
	logger.Info("Signer configured", "attester", auth.From.Hex())

	easClient, err := eas.NewClient(ethClient, ethClient, ethcommon.HexToAddress(easAddress))
	if err != nil {
		logger.Error("Failed to create EAS client", "err", err)
		return err
	}
	easClient.SetTransactOpts(auth)

	encoder, err := eas.NewSchemaEncoder(eas.CastSchema)
	if err != nil {
		return err
	}

	service, err := attester.NewService(&attester.Config{
		WebhookSecret: secrets.WebhookSecret,
		SchemaUID:     ethcommon.HexToHash(schemaUID),
		WaitMined:     cCtx.Bool(waitMinedFlag.Name),
	}, encoder, easClient, logger)
	if err != nil {
		logger.Error("Failed to create attestation service", "err", err)
		return err
	}

	cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(listenAddrFlag.Name))

	var metricsSrv *metrics.MetricsServer
	var recorder *metrics.Recorder
	if cfg.MetricsAddr != "" {
		metricsSrv, err = metrics.New(common.PackageName, cfg.MetricsAddr)
		if err != nil {
			logger.Error("Failed to create metrics server", "err", err)
			return err
		}
		recorder = metricsSrv.Recorder()
	}

	submitTimeout := cCtx.Duration(flags.SubmitTimeoutFlag.Name)
	if cfg.WriteTimeout > 0 && submitTimeout >= cfg.WriteTimeout {
		logger.Warn("submit-timeout is not below write-timeout, callers may see closed connections",
			"submitTimeout", submitTimeout, "writeTimeout", cfg.WriteTimeout)
	}

	handler := webhookhandler.NewHandler(service, recorder, submitTimeout, logger)
	server, err := httpserver.New(cfg, handler, metricsSrv)
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	logger.Info("Starting server",
		"easAddress", easAddress,
		"schemaUID", schemaUID,
		"waitMined", cCtx.Bool(waitMinedFlag.Name))
	server.RunInBackground()

	// Wait for termination signal
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")

	return nil
}
