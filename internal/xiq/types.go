package xiq

import "github.com/agentstation/dupap/pkg/inventory"

// page is the envelope of every paginated XIQ listing.
type page[T any] struct {
	Page       int `json:"page"`
	Count      int `json:"count"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
	Data       []T `json:"data"`
}

// last reports whether the page numbered pageNum is the final one.
func (p *page[T]) last(pageNum int) bool {
	return pageNum >= p.TotalPages || len(p.Data) == 0
}

// idsRequest is the body of the batch device calls.
type idsRequest struct {
	IDs []int64 `json:"ids"`
}

// groupRequest is the body of CCG create and update calls.
type groupRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	DeviceIDs   []int64 `json:"device_ids"`
}

// groupResponse is a CCG as returned by the API.
type groupResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DeviceIDs   []int64 `json:"device_ids"`
}

func (g groupResponse) toGroup() *inventory.Group {
	ids := g.DeviceIDs
	if ids == nil {
		ids = []int64{}
	}
	return &inventory.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		DeviceIDs:   ids,
	}
}
