package monero

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode serves canned JSON-RPC results keyed by method, and canned
// bodies for direct calls keyed by path.
type fakeNode struct {
	t      *testing.T
	server *httptest.Server

	mu      sync.Mutex
	results map[string]string
	errors  map[string]string
	direct  map[string]string
	params  map[string]json.RawMessage
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()

	n := &fakeNode{
		t:       t,
		results: map[string]string{},
		errors:  map[string]string{},
		direct:  map[string]string{},
		params:  map[string]json.RawMessage{},
	}

	n.server = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.server.Close)

	return n
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(n.t, err)

	n.mu.Lock()
	defer n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path != "/json_rpc" {
		method := strings.TrimPrefix(r.URL.Path, "/")
		n.params[method] = body

		reply, ok := n.direct[method]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, reply)
		return
	}

	var req struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
		ID     string          `json:"id"`
	}
	require.NoError(n.t, json.Unmarshal(body, &req))
	n.params[req.Method] = req.Params

	id, _ := json.Marshal(req.ID)

	if e, ok := n.errors[req.Method]; ok {
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":`+string(id)+`,"error":`+e+`}`)
		return
	}

	result, ok := n.results[req.Method]
	if !ok {
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":`+string(id)+`,"error":{"code":-32601,"message":"Method not found"}}`)
		return
	}

	_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":`+string(id)+`,"result":`+result+`}`)
}

func (n *fakeNode) reply(method, result string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results[method] = result
}

func (n *fakeNode) fail(method string, code int64, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	e, _ := json.Marshal(map[string]any{"code": code, "message": message})
	n.errors[method] = string(e)
}

func (n *fakeNode) replyDirect(method, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.direct[method] = body
}

// sent returns the params the node received for method.
func (n *fakeNode) sent(method string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return string(n.params[method])
}

func (n *fakeNode) client() *core.Client {
	return core.NewClientWithHTTP(n.server.URL, nil)
}

func mustHex[T core.HashType[T]](t *testing.T, s string) T {
	t.Helper()

	h, err := core.ParseHashString[T](s)
	require.NoError(t, err)
	return h.V
}

func assertDecodeError(t *testing.T, err error) {
	t.Helper()

	var decodeErr *core.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
