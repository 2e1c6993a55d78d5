package eas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/castproof/cast-attestation-webhook/interfaces"
)

// CastSchema is the field layout registered for cast provenance attestations.
const CastSchema = "uint32 timestamp, uint32 farcasterID, string castHash, string castTextContent, string castImageLink, string associatedBrand"

// ErrSchemaMismatch is returned when payload items do not line up with the schema.
var ErrSchemaMismatch = errors.New("items do not match schema")

// SchemaEncoder ABI-encodes attestation payloads for a single EAS schema.
type SchemaEncoder struct {
	schema string
	args   abi.Arguments
}

// NewSchemaEncoder parses an EAS schema string of the form
// "<type> <name>, <type> <name>, ...". Tuple types are not supported.
func NewSchemaEncoder(schema string) (*SchemaEncoder, error) {
	if strings.TrimSpace(schema) == "" {
		return nil, errors.New("empty schema")
	}

	var args abi.Arguments
	for _, field := range strings.Split(schema, ",") {
		parts := strings.Fields(field)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid schema field %q: expected \"<type> <name>\"", strings.TrimSpace(field))
		}
		if strings.ContainsAny(parts[0], "()") {
			return nil, fmt.Errorf("unsupported tuple type in field %q", parts[1])
		}

		typ, err := abi.NewType(parts[0], "", nil)
		if err != nil {
			return nil, fmt.Errorf("invalid type for field %q: %w", parts[1], err)
		}
		args = append(args, abi.Argument{Name: parts[1], Type: typ})
	}

	return &SchemaEncoder{schema: schema, args: args}, nil
}

// Schema returns the schema string the encoder was built from.
func (e *SchemaEncoder) Schema() string {
	return e.schema
}

// EncodeData ABI-encodes items. Items must be given in schema order with
// matching names and types; values must use the Go types go-ethereum's abi
// package expects (uint32 for uint32, string for string, ...).
func (e *SchemaEncoder) EncodeData(items []interfaces.SchemaItem) ([]byte, error) {
	if len(items) != len(e.args) {
		return nil, fmt.Errorf("%w: got %d items, schema has %d fields", ErrSchemaMismatch, len(items), len(e.args))
	}

	values := make([]any, len(items))
	for i, item := range items {
		arg := e.args[i]
		if item.Name != arg.Name {
			return nil, fmt.Errorf("%w: item %d is %q, expected %q", ErrSchemaMismatch, i, item.Name, arg.Name)
		}

		typ, err := abi.NewType(item.Type, "", nil)
		if err != nil || typ.String() != arg.Type.String() {
			return nil, fmt.Errorf("%w: field %q has type %q, expected %q", ErrSchemaMismatch, item.Name, item.Type, arg.Type.String())
		}
		values[i] = item.Value
	}

	data, err := e.args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("could not encode payload: %w", err)
	}
	return data, nil
}

// DecodeData reverses EncodeData.
func (e *SchemaEncoder) DecodeData(data []byte) ([]interfaces.SchemaItem, error) {
	values, err := e.args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode payload: %w", err)
	}

	items := make([]interfaces.SchemaItem, len(values))
	for i, v := range values {
		items[i] = interfaces.SchemaItem{
			Name:  e.args[i].Name,
			Type:  e.args[i].Type.String(),
			Value: v,
		}
	}
	return items, nil
}
