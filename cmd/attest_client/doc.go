// Package main (cmd/attest_client) is an operator CLI for the cast attestation webhook.
//
// Send a cast to a running server (the token defaults to $ZAPIER_SECRET):
//
//	attest_client mint --cast-hash 0xabc123 --fid 12345 --attest-wallet 0x... --cast-content "gm"
//
// Read an attestation back from the EAS contract on Base:
//
//	ALCHEMY_KEY=... attest_client get --uid 0x...
package main
