// Package attester implements the webhook-to-attestation pipeline.
//
// Service.Submit runs one linear pipeline per request:
//
//  1. compare the request token with the shared secret (ErrUnauthorized)
//  2. refuse to continue without a signer (ErrConfiguration)
//  3. strip 0x from the cast hash and validate fields (*ValidationError)
//  4. stamp the attestation with the current time in seconds
//  5. ABI-encode the payload in schema order
//  6. submit it to the registry (*SubmissionError on any failure)
//
// Nothing is retried and nothing is deduplicated: the same cast submitted
// twice yields two attestations with different timestamps.
package attester
