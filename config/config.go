// Package config loads the process-wide secrets once at startup and turns
// them into the signer and RPC endpoint the service needs.
package config

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/castproof/cast-attestation-webhook/attester"
)

// AlchemyBaseURL is the Base mainnet endpoint used when no RPC address is given.
const AlchemyBaseURL = "https://base-mainnet.g.alchemy.com/v2/"

var (
	ErrMissingPrivateKey = fmt.Errorf("%w: PRIVATE_KEY is not set", attester.ErrConfiguration)
	ErrMissingRPC        = fmt.Errorf("%w: neither an RPC address nor ALCHEMY_KEY is set", attester.ErrConfiguration)
)

// RPCSecrets holds the credentials needed to reach the chain read-only.
type RPCSecrets struct {
	AlchemyKey string `env:"ALCHEMY_KEY"`
}

// Secrets holds credentials read from the environment. They are immutable
// for the lifetime of the process.
type Secrets struct {
	WebhookSecret string `env:"ZAPIER_SECRET,required,notEmpty"`
	PrivateKey    string `env:"PRIVATE_KEY,required,notEmpty"`
	RPCSecrets
}

// LoadSecrets reads Secrets from the process environment.
func LoadSecrets() (*Secrets, error) {
	return parse[Secrets](env.Options{})
}

// LoadSecretsFrom reads Secrets from the given variables instead of the process environment.
func LoadSecretsFrom(environment map[string]string) (*Secrets, error) {
	return parse[Secrets](env.Options{Environment: environment})
}

// LoadRPCSecrets reads only the RPC credentials from the process environment.
func LoadRPCSecrets() (*RPCSecrets, error) {
	return parse[RPCSecrets](env.Options{})
}

// LoadRPCSecretsFrom reads only the RPC credentials from the given variables.
func LoadRPCSecretsFrom(environment map[string]string) (*RPCSecrets, error) {
	return parse[RPCSecrets](env.Options{Environment: environment})
}

func parse[T any](opts env.Options) (*T, error) {
	var secrets T
	if err := env.ParseWithOptions(&secrets, opts); err != nil {
		return nil, fmt.Errorf("%w: %w", attester.ErrConfiguration, err)
	}
	return &secrets, nil
}

// SigningKey parses the hex-encoded private key; a 0x prefix is allowed.
func (s *Secrets) SigningKey() (*ecdsa.PrivateKey, error) {
	if s.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s.PrivateKey), "0x"))
	if err != nil {
		// The parse error may quote key material.
		return nil, fmt.Errorf("%w: PRIVATE_KEY is not a valid secp256k1 key", attester.ErrConfiguration)
	}
	return key, nil
}

// RPCURL returns rpcAddr when set, otherwise the Alchemy Base endpoint for
// the configured key.
func (s *RPCSecrets) RPCURL(rpcAddr string) (string, error) {
	if rpcAddr != "" {
		return rpcAddr, nil
	}
	if s.AlchemyKey == "" {
		return "", ErrMissingRPC
	}
	return AlchemyBaseURL + s.AlchemyKey, nil
}

// ChainIDReader is implemented by ethclient.Client.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// NewTransactOpts builds the signer for attest transactions, using the chain
// ID reported by the node.
func (s *Secrets) NewTransactOpts(ctx context.Context, chain ChainIDReader) (*bind.TransactOpts, error) {
	key, err := s.SigningKey()
	if err != nil {
		return nil, err
	}

	chainID, err := chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read chain id: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("could not create transactor: %w", err)
	}
	return auth, nil
}

// IsConfigurationError reports whether err stems from missing or invalid configuration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, attester.ErrConfiguration)
}
