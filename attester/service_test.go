package attester

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/castproof/cast-attestation-webhook/eas"
	"github.com/castproof/cast-attestation-webhook/interfaces"
)

const testSecret = "correct-horse"

var testWallet = "0x000000000000000000000000000000000000dEaD"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() *Request {
	return &Request{
		CastHash:        "0xabc123",
		FarcasterID:     "42",
		AttestWallet:    testWallet,
		CastContent:     "hello",
		CastImageLink:   "",
		AssociatedBrand: "acme",
		Token:           testSecret,
	}
}

func newTestService(t *testing.T, submitter *eas.MockSubmitter, waitMined bool) *Service {
	encoder, err := eas.NewSchemaEncoder(eas.CastSchema)
	require.NoError(t, err)

	svc, err := NewService(&Config{
		WebhookSecret: testSecret,
		SchemaUID:     eas.CastSchemaUID,
		WaitMined:     waitMined,
	}, encoder, submitter, testLogger())
	require.NoError(t, err)
	return svc
}

// decodePayload decodes submitted data back into schema items.
func decodePayload(t *testing.T, data []byte) []interfaces.SchemaItem {
	encoder, err := eas.NewSchemaEncoder(eas.CastSchema)
	require.NoError(t, err)
	items, err := encoder.DecodeData(data)
	require.NoError(t, err)
	return items
}

func TestSubmit_Success(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	svc := newTestService(t, submitter, false)
	svc.now = func() time.Time { return time.Unix(1700000000, 999000000) }

	txHash := common.HexToHash("0xfeed")
	var submitted []byte
	submitter.On("CanTransact").Return(true)
	submitter.On("Attest", mock.Anything, eas.CastSchemaUID, common.HexToAddress(testWallet), mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(3).([]byte) }).
		Return(txHash, nil)

	result, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, txHash, result.TxHash)
	assert.Equal(t, common.Hash{}, result.UID)
	assert.Equal(t, "abc123", result.Attestation.CastHash)
	assert.Equal(t, uint32(1700000000), result.Attestation.Timestamp)

	items := decodePayload(t, submitted)
	assert.Equal(t, uint32(1700000000), items[0].Value)
	assert.Equal(t, uint32(42), items[1].Value)
	assert.Equal(t, "abc123", items[2].Value)
	assert.Equal(t, "hello", items[3].Value)
	assert.Equal(t, "", items[4].Value)
	assert.Equal(t, "acme", items[5].Value)

	submitter.AssertExpectations(t)
}

func TestSubmit_WrongTokenMakesNoCalls(t *testing.T) {
	for _, token := range []string{"", "wrong", testSecret + " ", "CORRECT-HORSE"} {
		submitter := new(eas.MockSubmitter)
		encoder := new(eas.MockEncoder)

		svc, err := NewService(&Config{WebhookSecret: testSecret, SchemaUID: eas.CastSchemaUID}, encoder, submitter, testLogger())
		require.NoError(t, err)

		req := validRequest()
		req.Token = token
		_, err = svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnauthorized)

		submitter.AssertNotCalled(t, "Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		submitter.AssertNotCalled(t, "CanTransact")
		encoder.AssertNotCalled(t, "EncodeData", mock.Anything)
	}
}

func TestSubmit_NoSignerIsConfigurationError(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	svc := newTestService(t, submitter, false)

	submitter.On("CanTransact").Return(false)

	_, err := svc.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConfiguration)
	submitter.AssertNotCalled(t, "Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SubmissionError(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	svc := newTestService(t, submitter, false)

	rpcErr := errors.New("execution reverted")
	submitter.On("CanTransact").Return(true)
	submitter.On("Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(common.Hash{}, rpcErr).Once()

	_, err := svc.Submit(context.Background(), validRequest())
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, rpcErr)

	// No retry
	submitter.AssertNumberOfCalls(t, "Attest", 1)
}

func TestSubmit_EncodingErrorIsSubmissionError(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	encoder := new(eas.MockEncoder)
	svc, err := NewService(&Config{WebhookSecret: testSecret}, encoder, submitter, testLogger())
	require.NoError(t, err)

	submitter.On("CanTransact").Return(true)
	encoder.On("EncodeData", mock.Anything).Return([]byte(nil), eas.ErrSchemaMismatch)

	_, err = svc.Submit(context.Background(), validRequest())
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, eas.ErrSchemaMismatch)
	submitter.AssertNotCalled(t, "Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Request)
		field  string
	}{
		{"empty cast hash", func(r *Request) { r.CastHash = "" }, "cast_hash"},
		{"bare prefix", func(r *Request) { r.CastHash = "0x" }, "cast_hash"},
		{"non hex cast hash", func(r *Request) { r.CastHash = "0xnothex" }, "cast_hash"},
		{"bad wallet", func(r *Request) { r.AttestWallet = "0xDEAD" }, "attest_wallet"},
		{"empty wallet", func(r *Request) { r.AttestWallet = "" }, "attest_wallet"},
		{"non numeric fid", func(r *Request) { r.FarcasterID = "abc" }, "fid"},
		{"negative fid", func(r *Request) { r.FarcasterID = "-1" }, "fid"},
		{"fid overflow", func(r *Request) { r.FarcasterID = "4294967296" }, "fid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := new(eas.MockSubmitter)
			svc := newTestService(t, submitter, false)
			submitter.On("CanTransact").Return(true)

			req := validRequest()
			tt.modify(req)
			_, err := svc.Submit(context.Background(), req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			submitter.AssertNotCalled(t, "Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_WaitMined(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	svc := newTestService(t, submitter, true)

	txHash := common.HexToHash("0xfeed")
	uid := common.HexToHash("0x0123")
	submitter.On("CanTransact").Return(true)
	submitter.On("Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(txHash, nil)
	submitter.On("WaitForAttestation", mock.Anything, txHash).Return(uid, nil)

	result, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, txHash, result.TxHash)
	assert.Equal(t, uid, result.UID)
	submitter.AssertExpectations(t)
}

func TestSubmit_NotIdempotent(t *testing.T) {
	submitter := new(eas.MockSubmitter)
	svc := newTestService(t, submitter, false)

	clock := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return clock }

	var payloads [][]byte
	submitter.On("CanTransact").Return(true)
	submitter.On("Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { payloads = append(payloads, args.Get(3).([]byte)) }).
		Return(common.HexToHash("0x01"), nil)

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	clock = clock.Add(time.Second)
	_, err = svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	submitter.AssertNumberOfCalls(t, "Attest", 2)
	require.Len(t, payloads, 2)
	assert.NotEqual(t, payloads[0], payloads[1])
}

func TestTimestamp_MonotonicSeconds(t *testing.T) {
	svc := newTestService(t, new(eas.MockSubmitter), false)

	times := []time.Time{
		time.Unix(100, 900000000),
		time.Unix(101, 0),
		time.Unix(99, 0), // wall clock stepped back
		time.Unix(105, 500),
	}
	i := 0
	svc.now = func() time.Time { ts := times[i]; i++; return ts }

	assert.Equal(t, uint32(100), svc.timestamp())
	assert.Equal(t, uint32(101), svc.timestamp())
	assert.Equal(t, uint32(101), svc.timestamp())
	assert.Equal(t, uint32(105), svc.timestamp())
}

func TestTimestamp_RealClockIsSeconds(t *testing.T) {
	svc := newTestService(t, new(eas.MockSubmitter), false)

	before := time.Now().Unix()
	ts := svc.timestamp()
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, int64(ts), before)
	assert.LessOrEqual(t, int64(ts), after)
}

func TestNormalizeCastHash(t *testing.T) {
	assert.Equal(t, "abc123", NormalizeCastHash("0xabc123"))
	assert.Equal(t, "abc123", NormalizeCastHash("abc123"))
	assert.Equal(t, "ABC", NormalizeCastHash("0XABC"))
	assert.Equal(t, "0xabc", NormalizeCastHash("0x0xabc"))
	assert.Equal(t, "", NormalizeCastHash("0x"))
	assert.Equal(t, "", NormalizeCastHash(""))
}

func TestNewService_Configuration(t *testing.T) {
	encoder := new(eas.MockEncoder)
	submitter := new(eas.MockSubmitter)

	_, err := NewService(&Config{}, encoder, submitter, testLogger())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewService(nil, encoder, submitter, testLogger())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewService(&Config{WebhookSecret: testSecret}, nil, submitter, testLogger())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewService(&Config{WebhookSecret: testSecret}, encoder, nil, testLogger())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t, new(eas.MockSubmitter), false)

	assert.NoError(t, svc.Authenticate(testSecret))
	assert.ErrorIs(t, svc.Authenticate(""), ErrUnauthorized)
	assert.ErrorIs(t, svc.Authenticate("correct"), ErrUnauthorized)
}
