package api

import (
	"encoding/json/v2"
	"net/http"
)

// maxRequestBody caps JSON request bodies at 1 MiB.
const maxRequestBody = 1 << 20

// decodeRequest parses a JSON request body into dst.
func decodeRequest(r *http.Request, dst any) error {
	return json.UnmarshalRead(http.MaxBytesReader(nil, r.Body, maxRequestBody), dst)
}
