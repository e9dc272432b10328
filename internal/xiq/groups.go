package xiq

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agentstation/dupap/pkg/inventory"
)

const groupsPath = "/ccgs"

func groupPath(id int64) string {
	return groupsPath + "/" + strconv.FormatInt(id, 10)
}

// FindGroupByName scans the CCG listing page by page and returns the first
// group named name. The scan stops at the page holding the match.
func (c *Client) FindGroupByName(ctx context.Context, name string) (*inventory.Group, bool, error) {
	for pageNum := 1; ; pageNum++ {
		query := url.Values{
			"page":  {strconv.Itoa(pageNum)},
			"limit": {strconv.Itoa(c.pageSize)},
		}

		var p page[groupResponse]
		if err := c.transport.Get(ctx, groupsPath, query, &p); err != nil {
			return nil, false, err
		}

		for _, g := range p.Data {
			if g.Name == name {
				group := g.toGroup()
				c.logger.Debug().
					Int64("group_id", group.ID).
					Int("members", len(group.DeviceIDs)).
					Msg("Found cloud config group")
				return group, true, nil
			}
		}

		if p.last(pageNum) {
			return nil, false, nil
		}
	}
}

// CreateGroup creates a CCG and returns its id.
func (c *Client) CreateGroup(ctx context.Context, spec inventory.GroupSpec) (int64, error) {
	body := groupRequest{
		Name:        spec.Name,
		Description: spec.Description,
		DeviceIDs:   nonNil(spec.DeviceIDs),
	}

	var created groupResponse
	if err := c.transport.Post(ctx, groupsPath, body, &created); err != nil {
		return 0, err
	}

	c.logger.Info().
		Int64("group_id", created.ID).
		Str("name", spec.Name).
		Ints64("device_ids", spec.DeviceIDs).
		Msg("Created cloud config group")
	return created.ID, nil
}

// UpdateGroup replaces the name, description and membership of an existing CCG.
func (c *Client) UpdateGroup(ctx context.Context, group inventory.Group) error {
	body := groupRequest{
		Name:        group.Name,
		Description: group.Description,
		DeviceIDs:   nonNil(group.DeviceIDs),
	}
	if err := c.transport.Put(ctx, groupPath(group.ID), body, nil); err != nil {
		return err
	}

	c.logger.Info().
		Int64("group_id", group.ID).
		Ints64("device_ids", group.DeviceIDs).
		Msg("Updated cloud config group")
	return nil
}

// DeleteGroup deletes a CCG.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	if err := c.transport.Delete(ctx, groupPath(id)); err != nil {
		return err
	}
	c.logger.Info().Int64("group_id", id).Msg("Deleted cloud config group")
	return nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
