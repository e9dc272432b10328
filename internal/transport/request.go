package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/logging"
)

// maxErrorBody caps how much of a failed response is kept in the error message.
const maxErrorBody = 512

// errorBody is the error envelope returned by the API.
type errorBody struct {
	ErrorCode    string `json:"error_code"`
	ErrorID      string `json:"error_id"`
	ErrorMessage string `json:"error_message"`
}

// DecodeResponse decodes a JSON response into the target structure. Any
// non-2xx status becomes an APIError. A nil target only checks the status.
func DecodeResponse(resp *http.Response, service, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Debug().Err(err).Str("endpoint", endpoint).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapAPI(service, endpoint, resp.StatusCode, errors.WrapIO("read", "response body", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewAPIError(service, endpoint, resp.StatusCode, errorMessage(resp, body))
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapAPI(service, endpoint, resp.StatusCode, errors.WrapParse("json", "response", err))
	}

	return nil
}

// errorMessage extracts a readable message from a failed response.
func errorMessage(resp *http.Response, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.ErrorMessage != "" {
		if eb.ErrorCode != "" {
			return eb.ErrorCode + ": " + eb.ErrorMessage
		}
		return eb.ErrorMessage
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	if len(text) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
