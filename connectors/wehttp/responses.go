package wehttp

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/weegigs/wee-commands-go/we"
)

var fallbackException = []byte(`{"type":"internal-error","message":"an internal error occurred"}`)

// encodeException is the single serialiser for exception bodies. Keeping one
// configuration makes responses identical across runs.
func encodeException(model we.ExceptionModel) []byte {
	body, err := json.Marshal(model)
	if err != nil {
		return fallbackException
	}
	return body
}

// writeException writes status and the encoded model in a single write with an
// exact Content-Length.
func writeException(w http.ResponseWriter, status int, model we.ExceptionModel) error {
	body := encodeException(model)

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	_, err := w.Write(body)
	return err
}
