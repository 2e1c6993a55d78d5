package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/castproof/cast-attestation-webhook/api"
	"github.com/castproof/cast-attestation-webhook/api/webhookhandler"
	"github.com/castproof/cast-attestation-webhook/cmd/flags"
	"github.com/castproof/cast-attestation-webhook/config"
	"github.com/castproof/cast-attestation-webhook/eas"
)

var flagServerAddr = &cli.StringFlag{
	Name:  "webhook-server-addr",
	Value: "http://127.0.0.1:8080",
	Usage: "Webhook server address to send the cast to",
}
var flagCastHash = &cli.StringFlag{
	Name:     "cast-hash",
	Required: true,
	Usage:    "Cast hash, hex with or without 0x prefix",
}
var flagFID = &cli.StringFlag{
	Name:     "fid",
	Required: true,
	Usage:    "Farcaster ID of the cast author",
}
var flagWallet = &cli.StringFlag{
	Name:     "attest-wallet",
	Required: true,
	Usage:    "Recipient address of the attestation",
}
var flagContent = &cli.StringFlag{
	Name:  "cast-content",
	Usage: "Cast text content",
}
var flagImageLink = &cli.StringFlag{
	Name:  "cast-image-link",
	Usage: "Link to the cast image, if any",
}
var flagBrand = &cli.StringFlag{
	Name:  "assoc-brand",
	Usage: "Brand associated with the cast",
}
var flagToken = &cli.StringFlag{
	Name:    "token",
	EnvVars: []string{"ZAPIER_SECRET"},
	Usage:   "Shared webhook secret",
}
var flagUID = &cli.StringFlag{
	Name:     "uid",
	Required: true,
	Usage:    "Attestation UID to look up",
}

const usage string = `Operator client for the cast attestation webhook.

  mint  sends a cast to a running webhook server, exactly as the automation platform would
  get   reads an attestation from the EAS contract and decodes its cast payload`

func main() {
	app := &cli.App{
		Name:  "attest client",
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "mint",
				Usage: "Submit a cast to the webhook server",
				Flags: []cli.Flag{
					flagServerAddr,
					flagCastHash,
					flagFID,
					flagWallet,
					flagContent,
					flagImageLink,
					flagBrand,
					flagToken,
				},
				Action: runMint,
			},
			{
				Name:  "get",
				Usage: "Look up an attestation on-chain",
				Flags: []cli.Flag{
					flagUID,
					flags.RpcAddrFlag,
					flags.EasAddressFlag,
				},
				Action: runGet,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMint(cCtx *cli.Context) error {
	fid := api.FarcasterID(cCtx.String(flagFID.Name))
	req := &api.WebhookRequest{
		CastHash:      stringPtr(cCtx.String(flagCastHash.Name)),
		FID:           &fid,
		AttestWallet:  stringPtr(cCtx.String(flagWallet.Name)),
		CastContent:   stringPtr(cCtx.String(flagContent.Name)),
		CastImageLink: stringPtr(cCtx.String(flagImageLink.Name)),
		AssocBrand:    stringPtr(cCtx.String(flagBrand.Name)),
		Token:         stringPtr(cCtx.String(flagToken.Name)),
	}

	resp, err := webhookhandler.Mint(cCtx.Context, cCtx.String(flagServerAddr.Name), req)
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func runGet(cCtx *cli.Context) error {
	uid := cCtx.String(flagUID.Name)
	if len(ethcommon.FromHex(uid)) != ethcommon.HashLength {
		return fmt.Errorf("invalid uid: %s", uid)
	}
	easAddress := cCtx.String(flags.EasAddressFlag.Name)
	if !ethcommon.IsHexAddress(easAddress) {
		return fmt.Errorf("invalid eas-address: %s", easAddress)
	}

	// Reads need no signer, so only the RPC credentials are taken from the environment.
	secrets, err := config.LoadRPCSecrets()
	if err != nil {
		return err
	}
	rpcURL, err := secrets.RPCURL(cCtx.String(flags.RpcAddrFlag.Name))
	if err != nil {
		return err
	}

	ethClient, err := ethclient.Dial(rpcURL)
	if err != nil {
		return err
	}
	defer ethClient.Close()

	client, err := eas.NewClient(ethClient, ethClient, ethcommon.HexToAddress(easAddress))
	if err != nil {
		return err
	}

	attestation, err := client.GetAttestation(cCtx.Context, ethcommon.HexToHash(uid))
	if err != nil {
		return err
	}
	if attestation.Uid == ([32]byte{}) {
		return errors.New("attestation not found")
	}

	encoder, err := eas.NewSchemaEncoder(eas.CastSchema)
	if err != nil {
		return err
	}
	items, err := encoder.DecodeData(attestation.Data)
	if err != nil {
		return fmt.Errorf("attestation data does not match the cast schema: %w", err)
	}

	fields := make(map[string]any, len(items))
	for _, item := range items {
		fields[item.Name] = item.Value
	}

	return printJSON(map[string]any{
		"uid":       ethcommon.Hash(attestation.Uid).Hex(),
		"schema":    ethcommon.Hash(attestation.Schema).Hex(),
		"time":      attestation.Time,
		"recipient": attestation.Recipient.Hex(),
		"attester":  attestation.Attester.Hex(),
		"revoked":   attestation.RevocationTime != 0,
		"data":      fields,
	})
}

func stringPtr(s string) *string {
	return &s
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
