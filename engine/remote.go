package engine

import (
	"time"

	"banqi/communication/client"
)

// NewRemoteEngine referees a game between two agent servers.
func NewRemoteEngine(redURL, blackURL string, seed uint64, timeout time.Duration, options ...Option) *LocalEngine {
	return NewLocalEngine(
		client.NewRemoteAgent(redURL, timeout),
		client.NewRemoteAgent(blackURL, timeout),
		seed,
		options...,
	)
}
