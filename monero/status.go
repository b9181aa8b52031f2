package monero

import (
	"context"
	"encoding/json"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const statusOK = "OK"

var errStatusNotOK = errors.New("result status is not OK")

// checkStatus requires raw to carry "status": "OK".
func checkStatus(method string, raw json.RawMessage) error {
	status := gjson.GetBytes(raw, "status")
	if status.Type == gjson.String && status.Str == statusOK {
		return nil
	}

	return &core.DecodeError{
		Method: method,
		Body:   raw,
		Err:    errors.Wrapf(errStatusNotOK, "got %s", status.Raw),
	}
}

// callOK is core.Call for results tagged with a status field.
func callOK[T any](ctx context.Context, c *core.Client, method string, params core.Params) (T, error) {
	var zero T

	raw, err := c.Request(ctx, method, params)
	if err != nil {
		return zero, err
	}

	if err := checkStatus(method, raw); err != nil {
		return zero, err
	}

	return core.DecodeResult[T](method, raw)
}

// callDirectOK is core.CallDirect for results tagged with a status field.
func callDirectOK[T any](ctx context.Context, c *core.Client, method string, body any) (T, error) {
	var zero T

	raw, err := c.RequestDirect(ctx, method, body)
	if err != nil {
		return zero, err
	}

	if err := checkStatus(method, raw); err != nil {
		return zero, err
	}

	return core.DecodeResult[T](method, raw)
}
