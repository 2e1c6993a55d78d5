// Package eas talks to an Ethereum Attestation Service registry.
//
// It has two halves:
//
//   - SchemaEncoder turns ordered, typed payload items into the ABI-encoded
//     bytes stored in an attestation, and back. It is built from the EAS
//     schema notation, for example CastSchema.
//   - Client signs and submits attest transactions through a go-ethereum
//     contract binding, waits for receipts and reads attestations back.
//
// Like the other on-chain clients in this repository, Client is read-only
// until SetTransactOpts is called:
//
//	client, err := eas.NewClient(ethClient, ethClient, eas.DefaultRegistryAddress)
//	if err != nil {
//	    return err
//	}
//	auth, _ := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
//	client.SetTransactOpts(auth)
//
//	encoder, _ := eas.NewSchemaEncoder(eas.CastSchema)
//	data, _ := encoder.EncodeData(attestation.SchemaItems())
//	txHash, err := client.Attest(ctx, eas.CastSchemaUID, recipient, data)
//
// MockSubmitter and MockEncoder are testify mocks for handler tests.
package eas
