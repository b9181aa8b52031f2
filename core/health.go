package core

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
)

type NodeInfo struct {
	RpcUrl  string `json:"rpcUrl"` // only first 30 chars
	Latency string `json:"latency"`
	IsAlive bool   `json:"isAlive"`
	Error   string `json:"error,omitempty"`
}

// Health issues one no-argument JSON-RPC call and reports whether the node
// answered and how long it took. An application error still proves the node
// is alive.
func (c *Client) Health(ctx context.Context, method string) NodeInfo {
	url := c.addr
	if len(url) > 30 {
		url = url[:30]
	}

	var latency time.Duration
	startTime := time.Now()
	_, err := c.Request(ctx, method, NoParams())

	isAlive := err == nil
	if err != nil {
		c.logger.Warnf("health probe %s failed: %v", method, err)
		var appErr *ApplicationError
		if errors.As(err, &appErr) {
			isAlive = true
		}
	}

	if isAlive {
		latency = time.Since(startTime)
	} else {
		latency = time.Duration(math.MaxInt64)
	}

	info := NodeInfo{
		RpcUrl:  url,
		Latency: latency.String(),
		IsAlive: isAlive,
	}

	if err != nil {
		info.Error = err.Error()
	}

	return info
}
