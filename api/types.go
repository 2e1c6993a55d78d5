package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/castproof/cast-attestation-webhook/attester"
)

// LivenessMessage is returned by GET on the webhook routes.
const LivenessMessage = "attestation webhook is live"

// FarcasterID accepts a fid sent either as a JSON number or as a string.
type FarcasterID string

func (f *FarcasterID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FarcasterID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fid must be a number or a string: %w", err)
	}
	*f = FarcasterID(n.String())
	return nil
}

// WebhookRequest is the JSON body posted by the automation platform when a
// cast is published. Every field must be present; text fields may be empty.
type WebhookRequest struct {
	CastHash      *string      `json:"cast_hash"`
	FID           *FarcasterID `json:"fid"`
	AttestWallet  *string      `json:"attest_wallet"`
	CastContent   *string      `json:"cast_content"`
	CastImageLink *string      `json:"cast_image_link"`
	AssocBrand    *string      `json:"assoc_brand"`
	Token         *string      `json:"token"`
}

// MissingFieldsError lists required fields absent from a webhook body.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

// CheckFields returns a *MissingFieldsError if any field is absent or null.
func (r *WebhookRequest) CheckFields() error {
	var missing []string
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"cast_hash", r.CastHash != nil},
		{"fid", r.FID != nil},
		{"attest_wallet", r.AttestWallet != nil},
		{"cast_content", r.CastContent != nil},
		{"cast_image_link", r.CastImageLink != nil},
		{"assoc_brand", r.AssocBrand != nil},
		{"token", r.Token != nil},
	} {
		if !f.present {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// TokenValue returns the token or an empty string when it is absent.
func (r *WebhookRequest) TokenValue() string {
	return deref(r.Token)
}

// ToRequest converts the body into an attester request. Absent fields
// become empty strings; call CheckFields first.
func (r *WebhookRequest) ToRequest() *attester.Request {
	var fid string
	if r.FID != nil {
		fid = string(*r.FID)
	}

	return &attester.Request{
		CastHash:        deref(r.CastHash),
		FarcasterID:     fid,
		AttestWallet:    deref(r.AttestWallet),
		CastContent:     deref(r.CastContent),
		CastImageLink:   deref(r.CastImageLink),
		AssociatedBrand: deref(r.AssocBrand),
		Token:           deref(r.Token),
	}
}

// MintResponse is returned after a successful submission.
type MintResponse struct {
	// TxHash is the hash of the attest transaction.
	TxHash string `json:"tx_hash"`

	// UID is the attestation UID, only set when the server waits for receipts.
	UID string `json:"uid,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
