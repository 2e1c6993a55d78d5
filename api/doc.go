/*
Package api contains the types shared by the webhook server, its handlers
and its clients: the HTTP server configuration, the webhook body accepted
from the automation platform and the response returned to it.

The webhook body is decoded strictly: unknown fields are rejected and every
documented field must be present, even when its value is an empty string.
The fid is accepted as either a JSON number or a numeric string.

	{
	  "cast_hash": "0xabc123",
	  "fid": "42",
	  "attest_wallet": "0x000000000000000000000000000000000000dEaD",
	  "cast_content": "hello",
	  "cast_image_link": "",
	  "assoc_brand": "acme",
	  "token": "<shared secret>"
	}
*/
package api
