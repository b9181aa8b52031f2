package core

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("response is not valid JSON")
var errMissingResult = errors.New("response has neither result nor error")
var errMalformedError = errors.New("error object has no integer code")

// classifyResponse unwraps a JSON-RPC response body. It returns the raw
// result, an *ApplicationError when the node answered with an error object,
// or a *DecodeError when the body is not a JSON-RPC response.
func classifyResponse(method string, body []byte) (json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Method: method, Body: body, Err: errInvalidJSON}
	}

	if errField := gjson.GetBytes(body, "error"); errField.Exists() && errField.Type != gjson.Null {
		code := errField.Get("code")
		if code.Type != gjson.Number {
			return nil, &DecodeError{Method: method, Body: body, Err: errMalformedError}
		}

		return nil, &ApplicationError{
			Code:    code.Int(),
			Message: errField.Get("message").String(),
		}
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return nil, &DecodeError{Method: method, Body: body, Err: errMissingResult}
	}

	return json.RawMessage(result.Raw), nil
}

// DecodeResult unmarshals raw into T, reporting a schema mismatch as a
// *DecodeError carrying the raw bytes.
func DecodeResult[T any](method string, raw []byte) (T, error) {
	var out T

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Method: method, Body: raw, Err: err}
	}

	return out, nil
}
