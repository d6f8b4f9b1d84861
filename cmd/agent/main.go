package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openmint/marketplace/internal/adapter"
	"github.com/openmint/marketplace/internal/config"
	"github.com/openmint/marketplace/internal/contract"
	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/gateway"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/metadata"
	"github.com/openmint/marketplace/internal/orchestrator"
	"github.com/openmint/marketplace/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")

	operation = flag.String("op", "", "Operation to run: mint or transfer")

	// Mint flags
	name        = flag.String("name", "", "Artwork title")
	description = flag.String("description", "", "Artwork description")
	assetPath   = flag.String("file", "", "Path to the artwork file")
	price       = flag.Float64("price", 0, "Listing price in ETH")
	listed      = flag.Bool("listed", false, "List the token for sale after minting")

	// Transfer flags
	tokenNumber = flag.String("token", "", "Token number to transfer")
	recipient   = flag.String("to", "", "Recipient address")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAgentConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// The agent aborts cleanly on interrupt: before broadcast the attempt is
	// abandoned, after broadcast the confirmation wait keeps the context.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "wallet-agent",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Load the signing key
	fs := adapter.NewFileSystem()
	signer, err := wallet.NewKeyFileSigner(fs, cfg.Wallet.KeyFile)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load signing key", zap.Error(err))
	}

	session, err := wallet.NewSession(signer.Address().Hex(), cfg.Ethereum.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create wallet session", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Wallet session opened",
		zap.String("address", session.Address()),
		zap.String("chain", string(cfg.Ethereum.ChainID)))

	// Connect to the Ethereum RPC endpoint
	dialer := adapter.NewEthClientDialer()
	eth, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}

	contractClient := contract.NewClient(contract.Config{
		ContractAddress:     cfg.Ethereum.ContractAddress,
		MintValueWei:        domain.WeiPerEth(cfg.Ethereum.MintValueETH),
		TransferGasLimit:    cfg.Ethereum.TransferGasLimit,
		ConfirmPollInterval: cfg.Ethereum.ConfirmPollInterval,
		ConfirmTimeout:      cfg.Ethereum.ConfirmTimeout,
	}, eth, signer, adapter.NewClock())
	defer contractClient.Close()

	// Gateway client for off-chain persistence
	gw := gateway.NewClient(
		adapter.NewHTTPClient(cfg.Gateway.Timeout),
		adapter.NewJSON(),
		cfg.Gateway.BaseURL,
		cfg.Gateway.APIKey,
	)

	// Register the wallet so the gateway knows this address
	if err := gw.UpsertUser(ctx, &domain.UserRecord{Address: session.Address()}); err != nil {
		logger.WarnCtx(ctx, "Failed to register wallet with gateway", zap.Error(err))
	}

	switch *operation {
	case "mint":
		err = runMint(ctx, session, contractClient, gw, cfg)
	case "transfer":
		err = runTransfer(ctx, session, contractClient, gw, cfg)
	default:
		fmt.Fprintln(os.Stderr, "usage: agent -op mint|transfer [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err != nil {
		logger.ErrorCtx(ctx, err)
		if kind := domain.AttemptErrorKind(err); kind != "" {
			fmt.Fprintf(os.Stderr, "attempt failed (%s): %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "attempt failed: %v\n", err)
		}
		os.Exit(1)
	}
}

// runMint drives one mint attempt end to end
func runMint(ctx context.Context, session *wallet.Session, contractClient contract.Client, gw gateway.Client, cfg *config.AgentConfig) error {
	if *name == "" || *assetPath == "" {
		return fmt.Errorf("mint requires -name and -file")
	}

	fs := adapter.NewFileSystem()
	asset, err := fs.ReadFile(*assetPath)
	if err != nil {
		return fmt.Errorf("failed to read artwork file: %w", err)
	}

	publisher := metadata.NewGatewayPublisher(gw)
	mint := orchestrator.NewMint(session, contractClient, publisher, gw, cfg.Ethereum.ContractAddress)

	txHash, err := mint.Submit(ctx, orchestrator.MintInput{
		Name:        *name,
		Description: *description,
		Filename:    filepath.Base(*assetPath),
		Asset:       asset,
		Price:       *price,
		Listed:      *listed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("mint transaction broadcast: %s\n", txHash)
	fmt.Println(mint.State().ProgressLabel())

	receipt, confirmErr := contractClient.WaitForConfirmation(ctx, txHash)
	if err := mint.HandleConfirmation(ctx, txHash, mint.Attempt(), receipt, confirmErr); err != nil {
		return err
	}

	result := mint.Result()
	fmt.Printf("minted token %s to %s\n", result.TokenNumber, result.OwnerAddress)
	return nil
}

// runTransfer drives one transfer attempt end to end, including the on-chain
// ownership pre-check
func runTransfer(ctx context.Context, session *wallet.Session, contractClient contract.Client, gw gateway.Client, cfg *config.AgentConfig) error {
	if *tokenNumber == "" || *recipient == "" {
		return fmt.Errorf("transfer requires -token and -to")
	}

	transfer, err := orchestrator.NewTransfer(session, contractClient, gw, cfg.Ethereum.ContractAddress, *tokenNumber)
	if err != nil {
		return err
	}

	if err := transfer.VerifyOwnership(ctx); err != nil {
		return err
	}

	txHash, err := transfer.Submit(ctx, *recipient)
	if err != nil {
		return err
	}

	fmt.Printf("transfer transaction broadcast: %s\n", txHash)
	fmt.Println(transfer.State().ProgressLabel())

	receipt, confirmErr := contractClient.WaitForConfirmation(ctx, txHash)
	if err := transfer.HandleConfirmation(ctx, txHash, transfer.Attempt(), receipt, confirmErr); err != nil {
		return err
	}

	result := transfer.Result()
	fmt.Printf("transferred token %s to %s\n", result.TokenNumber, result.ToAddress)
	return nil
}
