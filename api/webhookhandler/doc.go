// Package webhookhandler serves the cast webhook endpoints and provides a
// client for them.
//
// POST /api/mint and POST /mint accept api.WebhookRequest and answer with
// api.MintResponse. GET on the same routes is a liveness probe. The handler
// authenticates the token before reporting any field problem, so callers
// without the secret only ever see 400 for unparseable bodies and 401.
package webhookhandler
