package client

import (
	"sync"
	"time"
)

var ManagerClientGlobal = NewManagerClient(0)

// ManagerClient one client per sd endpoint
type ManagerClient struct {
	clients *sync.Map
	timeout time.Duration
}

func NewManagerClient(timeout time.Duration) *ManagerClient {
	return &ManagerClient{
		clients: new(sync.Map),
		timeout: timeout,
	}
}

// SetTimeout only affect clients created after the call
func (c *ManagerClient) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

func (c *ManagerClient) GetClient(endPoint string) *Client {
	val, existed := c.clients.Load(endPoint)
	if existed {
		return val.(*Client)
	}
	client := NewClient(endPoint, c.timeout)
	val, _ = c.clients.LoadOrStore(endPoint, client)
	return val.(*Client)
}
