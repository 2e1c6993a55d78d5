package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarcasterID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected FarcasterID
		wantErr  bool
	}{
		{`"42"`, "42", false},
		{`42`, "42", false},
		{`"  7 "`, "  7 ", false},
		{`"abc"`, "abc", false},
		{`true`, "", true},
		{`{}`, "", true},
	}

	for _, tt := range tests {
		var fid FarcasterID
		err := json.Unmarshal([]byte(tt.input), &fid)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, fid)
	}
}

func TestWebhookRequest_CheckFields(t *testing.T) {
	var complete WebhookRequest
	err := json.Unmarshal([]byte(`{
		"cast_hash": "0xabc",
		"fid": 1,
		"attest_wallet": "0x000000000000000000000000000000000000dEaD",
		"cast_content": "",
		"cast_image_link": "",
		"assoc_brand": "",
		"token": "t"
	}`), &complete)
	require.NoError(t, err)
	assert.NoError(t, complete.CheckFields())

	req := complete.ToRequest()
	assert.Equal(t, "0xabc", req.CastHash)
	assert.Equal(t, "1", req.FarcasterID)
	assert.Equal(t, "t", req.Token)
	assert.Equal(t, "", req.CastContent)

	var partial WebhookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cast_hash": "0xabc", "fid": null, "token": "t"}`), &partial))
	err = partial.CheckFields()

	var missingErr *MissingFieldsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"fid", "attest_wallet", "cast_content", "cast_image_link", "assoc_brand"}, missingErr.Fields)

	// ToRequest tolerates absent fields
	assert.Equal(t, "", partial.ToRequest().FarcasterID)
	assert.Equal(t, "t", partial.TokenValue())
	assert.Equal(t, "", (&WebhookRequest{}).TokenValue())
}
