package feeder

import "context"

// NullClient is a no-op client used when no feeder credentials are
// configured. It allows the API to run in limited mode without a device
// on the network.
type NullClient struct{}

// NewNullClient creates a new NullClient.
func NewNullClient() *NullClient {
	return &NullClient{}
}

func (c *NullClient) Connect(ctx context.Context) error {
	return ErrNotConfigured
}

func (c *NullClient) Disconnect() error {
	return nil
}

func (c *NullClient) Get(ctx context.Context, dp int) (any, error) {
	return nil, ErrNotConfigured
}

func (c *NullClient) Set(ctx context.Context, dp int, value any) error {
	return ErrNotConfigured
}

func (c *NullClient) IsConnected() bool {
	return false
}
