// Package interfaces holds the domain types of the cast attestation webhook
// and the narrow interfaces its components depend on.
//
// CastAttestation is the normalized form of a webhook request. Its
// SchemaItems method yields the ordered values registered in the EAS schema.
//
// SchemaEncoder turns those items into the attestation payload,
// AttestationSubmitter sends the signed attest transaction and
// AttestationWaiter optionally resolves the resulting attestation UID.
// Implementations live in package eas.
package interfaces
