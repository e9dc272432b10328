package xiq

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agentstation/dupap/pkg/inventory"
)

const (
	devicesPath  = "/devices"
	unmanagePath = "/devices/:unmanage"
	deletePath   = "/devices/:delete"
)

// ListDevices fetches every device, following pagination to the last page.
// A failure on any page discards the pages already read.
func (c *Client) ListDevices(ctx context.Context) ([]inventory.Device, error) {
	var devices []inventory.Device
	for pageNum := 1; ; pageNum++ {
		query := url.Values{
			"page":  {strconv.Itoa(pageNum)},
			"limit": {strconv.Itoa(c.pageSize)},
			"views": {"FULL"},
		}

		var p page[inventory.Device]
		if err := c.transport.Get(ctx, devicesPath, query, &p); err != nil {
			return nil, err
		}
		devices = append(devices, p.Data...)

		c.logger.Debug().
			Int("page", pageNum).
			Int("total_pages", p.TotalPages).
			Int("count", len(p.Data)).
			Msg("Fetched device page")

		if p.last(pageNum) {
			break
		}
	}

	c.logger.Info().Int("devices", len(devices)).Msg("Fetched device inventory")
	return devices, nil
}

// UnmanageDevices moves the devices to the unmanaged admin state in one call.
func (c *Client) UnmanageDevices(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.transport.Post(ctx, unmanagePath, idsRequest{IDs: ids}, nil); err != nil {
		return err
	}
	c.logger.Info().Ints64("device_ids", ids).Msg("Unmanaged devices")
	return nil
}

// DeleteDevices removes the devices from the inventory in one call.
func (c *Client) DeleteDevices(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.transport.Post(ctx, deletePath, idsRequest{IDs: ids}, nil); err != nil {
		return err
	}
	c.logger.Info().Ints64("device_ids", ids).Msg("Deleted devices")
	return nil
}
