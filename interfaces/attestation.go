package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TxHash identifies a submitted transaction. It is returned as soon as the
// transaction is accepted by the node, before it is mined.
type TxHash = common.Hash

// SchemaItem is a single named, typed value of an attestation payload.
// Type uses Solidity ABI notation (e.g. "uint32", "string").
type SchemaItem struct {
	Name  string
	Type  string
	Value any
}

// CastAttestation is the normalized provenance record for a single cast.
// Field order of SchemaItems matches the registered cast schema.
type CastAttestation struct {
	Timestamp       uint32
	FarcasterID     uint32
	CastHash        string
	CastTextContent string
	CastImageLink   string
	AssociatedBrand string

	Recipient common.Address
}

// SchemaItems returns the payload fields in schema order.
func (a *CastAttestation) SchemaItems() []SchemaItem {
	return []SchemaItem{
		{Name: "timestamp", Type: "uint32", Value: a.Timestamp},
		{Name: "farcasterID", Type: "uint32", Value: a.FarcasterID},
		{Name: "castHash", Type: "string", Value: a.CastHash},
		{Name: "castTextContent", Type: "string", Value: a.CastTextContent},
		{Name: "castImageLink", Type: "string", Value: a.CastImageLink},
		{Name: "associatedBrand", Type: "string", Value: a.AssociatedBrand},
	}
}

// SchemaEncoder turns ordered schema items into the payload bytes stored in
// an attestation.
type SchemaEncoder interface {
	EncodeData(items []SchemaItem) ([]byte, error)
}

// AttestationSubmitter sends attestations to an attestation registry.
type AttestationSubmitter interface {
	// Attest submits a revocable, non-expiring attestation of data under
	// schemaUID for recipient and returns the transaction hash.
	Attest(ctx context.Context, schemaUID common.Hash, recipient common.Address, data []byte) (TxHash, error)

	// CanTransact reports whether a signer is configured.
	CanTransact() bool
}

// AttestationWaiter resolves a submitted transaction into the UID of the
// attestation it created.
type AttestationWaiter interface {
	WaitForAttestation(ctx context.Context, tx TxHash) (common.Hash, error)
}
