package attester

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/atomic"

	"github.com/castproof/cast-attestation-webhook/interfaces"
)

// Config holds the immutable settings of the attestation service.
type Config struct {
	// WebhookSecret is the shared secret callers must present as token.
	WebhookSecret string

	// SchemaUID identifies the registered schema the payload is encoded for.
	SchemaUID common.Hash

	// WaitMined makes Submit wait for the receipt and resolve the attestation UID.
	WaitMined bool
}

// Request is a webhook notification about a published cast.
type Request struct {
	CastHash        string
	FarcasterID     string
	AttestWallet    string
	CastContent     string
	CastImageLink   string
	AssociatedBrand string
	Token           string
}

// Result describes a submitted attestation.
type Result struct {
	TxHash      interfaces.TxHash
	UID         common.Hash // zero unless WaitMined is set
	Attestation *interfaces.CastAttestation
}

// Service turns cast notifications into attestations.
type Service struct {
	cfg       *Config
	encoder   interfaces.SchemaEncoder
	submitter interfaces.AttestationSubmitter
	log       *slog.Logger

	now           func() time.Time
	lastTimestamp atomic.Uint32
}

// NewService creates the attestation service. The secret, encoder and
// submitter are required.
func NewService(cfg *Config, encoder interfaces.SchemaEncoder, submitter interfaces.AttestationSubmitter, log *slog.Logger) (*Service, error) {
	if cfg == nil || cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is not set", ErrConfiguration)
	}
	if encoder == nil || submitter == nil {
		return nil, fmt.Errorf("%w: encoder and submitter are required", ErrConfiguration)
	}
	if cfg.WaitMined {
		if _, ok := submitter.(interfaces.AttestationWaiter); !ok {
			return nil, fmt.Errorf("%w: submitter cannot wait for receipts", ErrConfiguration)
		}
	}

	return &Service{
		cfg:       cfg,
		encoder:   encoder,
		submitter: submitter,
		log:       log,
		now:       time.Now,
	}, nil
}

// Authenticate checks token against the shared secret in constant time.
func (s *Service) Authenticate(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.WebhookSecret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Submit authenticates req, encodes it against the cast schema and submits
// it to the registry. Identical requests produce distinct attestations.
func (s *Service) Submit(ctx context.Context, req *Request) (*Result, error) {
	if err := s.Authenticate(req.Token); err != nil {
		return nil, err
	}

	if !s.submitter.CanTransact() {
		return nil, fmt.Errorf("%w: no signing key configured", ErrConfiguration)
	}

	attestation, err := s.newAttestation(req)
	if err != nil {
		return nil, err
	}

	data, err := s.encoder.EncodeData(attestation.SchemaItems())
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	s.log.Debug("Encoded attestation payload", "data", hexutil.Encode(data), "fid", attestation.FarcasterID)

	txHash, err := s.submitter.Attest(ctx, s.cfg.SchemaUID, attestation.Recipient, data)
	if err != nil {
		s.log.Error("Failed to submit attestation", "err", err, "fid", attestation.FarcasterID, "castHash", attestation.CastHash)
		return nil, &SubmissionError{Err: err}
	}

	s.log.Info("Attestation submitted",
		"txHash", txHash.Hex(),
		"fid", attestation.FarcasterID,
		"castHash", attestation.CastHash,
		"recipient", attestation.Recipient.Hex())

	result := &Result{TxHash: txHash, Attestation: attestation}
	if !s.cfg.WaitMined {
		return result, nil
	}

	uid, err := s.submitter.(interfaces.AttestationWaiter).WaitForAttestation(ctx, txHash)
	if err != nil {
		s.log.Error("Failed to resolve attestation UID", "err", err, "txHash", txHash.Hex())
		return nil, &SubmissionError{Err: err}
	}
	s.log.Info("New attestation UID", "uid", uid.Hex(), "txHash", txHash.Hex())
	result.UID = uid

	return result, nil
}

func (s *Service) newAttestation(req *Request) (*interfaces.CastAttestation, error) {
	castHash := NormalizeCastHash(req.CastHash)
	if castHash == "" {
		return nil, &ValidationError{Field: "cast_hash", Reason: "must not be empty"}
	}
	if !isHex(castHash) {
		return nil, &ValidationError{Field: "cast_hash", Reason: "must be a hex string"}
	}

	if !common.IsHexAddress(req.AttestWallet) {
		return nil, &ValidationError{Field: "attest_wallet", Reason: "must be a 20-byte hex address"}
	}

	fid, err := strconv.ParseUint(strings.TrimSpace(req.FarcasterID), 10, 32)
	if err != nil {
		return nil, &ValidationError{Field: "fid", Reason: "must be an unsigned 32-bit integer"}
	}

	return &interfaces.CastAttestation{
		Timestamp:       s.timestamp(),
		FarcasterID:     uint32(fid),
		CastHash:        castHash,
		CastTextContent: req.CastContent,
		CastImageLink:   req.CastImageLink,
		AssociatedBrand: req.AssociatedBrand,
		Recipient:       common.HexToAddress(req.AttestWallet),
	}, nil
}

// timestamp returns the current time in whole seconds, never lower than a
// value it returned before.
func (s *Service) timestamp() uint32 {
	now := uint32(s.now().Unix())
	for {
		last := s.lastTimestamp.Load()
		if now <= last {
			return last
		}
		if s.lastTimestamp.CompareAndSwap(last, now) {
			return now
		}
	}
}

// NormalizeCastHash strips a single leading 0x. Upstream sources disagree
// on whether cast hashes carry the prefix.
func NormalizeCastHash(hash string) string {
	if strings.HasPrefix(hash, "0x") || strings.HasPrefix(hash, "0X") {
		return hash[2:]
	}
	return hash
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
