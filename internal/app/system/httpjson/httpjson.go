// Package httpjson holds the JSON request/response helpers shared by all
// feature handlers. Requests are size-limited before decoding; responses
// always carry the JSON content type.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. File uploads use multipart and
// are limited separately by the materials feature.
const maxBodyBytes = 1 << 20 // 1 MiB

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads the request body into dst. It returns an error suitable for
// surfacing as a validation failure: empty bodies, oversized bodies, and
// malformed JSON all land here.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("request body is not valid JSON")
	}
	return nil
}
