package client

import (
	"context"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// VirtualIOServersClient implements hmc.VirtualIOServersClient.
type VirtualIOServersClient struct {
	client *Client
}

// NewVirtualIOServersClient creates a new VIOS client.
func NewVirtualIOServersClient(client *Client) *VirtualIOServersClient {
	return &VirtualIOServersClient{client: client}
}

// List implements hmc.VirtualIOServersClient.List.
func (c *VirtualIOServersClient) List(ctx context.Context) ([]*hmc.VirtualIOServer, error) {
	entities, err := c.client.listEntities(ctx, uomPath(hmc.KindVirtualIOServer), hmc.KindVirtualIOServer)
	if err != nil {
		return nil, err
	}

	servers := make([]*hmc.VirtualIOServer, 0, len(entities))
	for _, entity := range entities {
		servers = append(servers, &hmc.VirtualIOServer{Entity: entity})
	}

	return servers, nil
}

// Get implements hmc.VirtualIOServersClient.Get.
func (c *VirtualIOServersClient) Get(ctx context.Context, uuid string) (*hmc.VirtualIOServer, error) {
	entity, err := c.client.getEntity(ctx, uomPath(hmc.KindVirtualIOServer, uuid), hmc.KindVirtualIOServer)
	if err != nil {
		return nil, err
	}

	return &hmc.VirtualIOServer{Entity: entity}, nil
}
