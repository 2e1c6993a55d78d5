package eas

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/castproof/cast-attestation-webhook/interfaces"
)

// MockSubmitter mocks the interfaces.AttestationSubmitter and
// interfaces.AttestationWaiter interfaces
type MockSubmitter struct {
	mock.Mock
}

// Attest mocks the Attest method
func (m *MockSubmitter) Attest(ctx context.Context, schemaUID common.Hash, recipient common.Address, data []byte) (interfaces.TxHash, error) {
	args := m.Called(ctx, schemaUID, recipient, data)
	return args.Get(0).(interfaces.TxHash), args.Error(1)
}

// CanTransact mocks the CanTransact method
func (m *MockSubmitter) CanTransact() bool {
	args := m.Called()
	return args.Bool(0)
}

// WaitForAttestation mocks the WaitForAttestation method
func (m *MockSubmitter) WaitForAttestation(ctx context.Context, tx interfaces.TxHash) (common.Hash, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(common.Hash), args.Error(1)
}

// MockEncoder mocks the interfaces.SchemaEncoder interface
type MockEncoder struct {
	mock.Mock
}

// EncodeData mocks the EncodeData method
func (m *MockEncoder) EncodeData(items []interfaces.SchemaItem) ([]byte, error) {
	args := m.Called(items)
	return args.Get(0).([]byte), args.Error(1)
}
