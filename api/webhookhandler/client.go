package webhookhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/castproof/cast-attestation-webhook/api"
)

// Mint posts a cast webhook to a running service and returns its response.
//
// Parameters:
//   - ctx: bounds the whole request, including the on-chain submission on the server
//   - url: base URL of the service (e.g., "http://127.0.0.1:8080")
//   - req: webhook body, including the shared-secret token
//
// A non-200 status is returned as an error carrying the response body.
func Mint(ctx context.Context, url string, req *api.WebhookRequest) (*api.MintResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(url, "/")+Routes[0], bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not send webhook: %w", err)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webhook rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var mintResp api.MintResponse
	if err := json.Unmarshal(respBody, &mintResp); err != nil {
		return nil, fmt.Errorf("could not parse response: %w", err)
	}

	return &mintResp, nil
}
