// Package main (cmd/httpserver) runs the cast attestation webhook.
//
// The server receives cast notifications from an automation platform, checks
// the shared secret, encodes the cast metadata against the registered EAS
// schema and submits a signed attest transaction. It answers with the
// transaction hash; with --wait-mined it also waits for the receipt and
// returns the attestation UID.
//
// Secrets are read from the environment only:
//
//	ZAPIER_SECRET  shared secret expected in the webhook "token" field (required)
//	PRIVATE_KEY    hex secp256k1 key that signs attest transactions (required)
//	ALCHEMY_KEY    Alchemy key for Base mainnet, unless --rpc-addr is given
//
// Example usage:
//
//	ZAPIER_SECRET=... PRIVATE_KEY=... ALCHEMY_KEY=... \
//	  httpserver --listen-addr 0.0.0.0:8080 --metrics-addr 0.0.0.0:8090 --log-json
//
// Against a local node:
//
//	httpserver --rpc-addr http://127.0.0.1:8545 --eas-address 0x... --schema-uid 0x...
package main
