package eas

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	easbindings "github.com/castproof/cast-attestation-webhook/bindings/eas"
)

var (
	// DefaultRegistryAddress is the EAS predeploy on Base and other OP Stack chains.
	DefaultRegistryAddress = common.HexToAddress("0x4200000000000000000000000000000000000021")

	// CastSchemaUID is the UID under which CastSchema is registered.
	CastSchemaUID = common.HexToHash("0xd88b6019cbfad1a9b093f2b4dcd96e443923f3ed434ed1a01677e2558f0b1f9c")
)

var (
	// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	// ErrTransactionReverted is returned when an attest transaction was mined but failed.
	ErrTransactionReverted = errors.New("attest transaction reverted")

	// ErrNoAttestedEvent is returned when a mined transaction carries no Attested log from the registry.
	ErrNoAttestedEvent = errors.New("no Attested event in receipt")
)

// Client submits and reads attestations on an EAS contract.
type Client struct {
	contract *easbindings.EAS
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address

	// mu serialises submissions so concurrent requests do not pick the same pending nonce.
	mu   sync.Mutex
	auth *bind.TransactOpts
}

// NewClient creates a client for the EAS contract at address. client is used
// for calls and transactions, backend for receipts.
func NewClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*Client, error) {
	contract, err := easbindings.NewEAS(address, client)
	if err != nil {
		return nil, err
	}

	return &Client{
		contract: contract,
		client:   client,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the signer used for attest transactions.
// This must be called before Attest.
func (c *Client) SetTransactOpts(auth *bind.TransactOpts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth
}

// CanTransact reports whether transaction options have been set.
func (c *Client) CanTransact() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth != nil
}

// Address returns the registry contract address.
func (c *Client) Address() common.Address {
	return c.address
}

// Attest sends a revocable attestation with no expiration and no reference
// UID. It returns as soon as the node has accepted the transaction.
func (c *Client) Attest(ctx context.Context, schemaUID common.Hash, recipient common.Address, data []byte) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auth == nil {
		return common.Hash{}, ErrNoTransactOpts
	}

	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.Attest(&opts, easbindings.AttestationRequest{
		Schema: schemaUID,
		Data: easbindings.AttestationRequestData{
			Recipient:      recipient,
			ExpirationTime: 0,
			Revocable:      true,
			RefUID:         [32]byte{},
			Data:           data,
			Value:          big.NewInt(0),
		},
	})
	if err != nil {
		return common.Hash{}, err
	}

	return tx.Hash(), nil
}

// WaitForAttestation blocks until txHash is mined and returns the UID of the
// attestation it created. Receipt lookups that fail are retried until ctx is done.
func (c *Client) WaitForAttestation(ctx context.Context, txHash common.Hash) (common.Hash, error) {
	receipt, err := bind.WaitMinedHash(ctx, c.backend, txHash)
	if err != nil {
		return common.Hash{}, fmt.Errorf("could not wait for receipt: %w", err)
	}
	return c.attestationUID(receipt)
}

func (c *Client) attestationUID(receipt *types.Receipt) (common.Hash, error) {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Hash{}, ErrTransactionReverted
	}

	for _, log := range receipt.Logs {
		if log.Address != c.address {
			continue
		}
		event, err := c.contract.ParseAttested(*log)
		if err != nil {
			continue
		}
		return event.Uid, nil
	}

	return common.Hash{}, ErrNoAttestedEvent
}

// GetAttestation reads an attestation by UID.
func (c *Client) GetAttestation(ctx context.Context, uid common.Hash) (*easbindings.Attestation, error) {
	opts := &bind.CallOpts{Context: ctx}

	attestation, err := c.contract.GetAttestation(opts, uid)
	if err != nil {
		return nil, err
	}
	return &attestation, nil
}
