package core

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Request struct {
	logger   *logrus.Entry
	data     *RequestData
	reqBytes []byte
}

// newRequest builds a JSON-RPC envelope with a fresh call id.
func newRequest(logger *logrus.Entry, method string, params Params) (*Request, error) {
	data := &RequestData{
		JsonRpc: jsonRpcVersion,
		Method:  method,
		Params:  params,
		ID:      uuid.NewString(),
	}

	reqBytes, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encode request", method)
	}

	return &Request{
		logger:   logger.WithFields(logrus.Fields{"call_id": data.ID, "method": method}),
		data:     data,
		reqBytes: reqBytes,
	}, nil
}

// newDirectRequest builds a request for the direct convention, where the body
// is the params object itself.
func newDirectRequest(logger *logrus.Entry, method string, body any) (*Request, error) {
	if body == nil {
		body = struct{}{}
	}

	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encode request", method)
	}

	return &Request{
		logger:   logger.WithFields(logrus.Fields{"method": method}),
		data:     &RequestData{Method: method},
		reqBytes: reqBytes,
	}, nil
}

func (r *Request) Method() string {
	return r.data.Method
}

// ID is empty for direct requests.
func (r *Request) ID() string {
	return r.data.ID
}
