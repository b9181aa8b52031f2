package core

const jsonRpcVersion = "2.0"

// path of the JSON-RPC endpoint, relative to the node address
const jsonRpcPath = "/json_rpc"

type RequestData struct {
	JsonRpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  Params `json:"params,omitzero"`
	ID      string `json:"id"`
}
