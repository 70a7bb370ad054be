package alma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"porenew/internal/logging"
)

const (
	// pageSize is the limit/offset window used when paging sets and members.
	pageSize = 50

	// maxOffset caps paging. If we need this many offsets, we've gone too far.
	maxOffset = 1000
)

var (
	// ErrSetNotFound means no set matched the given name or ID.
	ErrSetNotFound = errors.New("alma: set not found")

	// ErrNoMembers means the set resolved but contains no members.
	ErrNoMembers = errors.New("alma: set has no members")
)

// CodeValue is Alma's coded-value pair used throughout its JSON payloads.
type CodeValue struct {
	Value string `json:"value"`
	Desc  string `json:"desc,omitempty"`
}

// Set is an Alma set record, trimmed to the fields this tool reads.
type Set struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    CodeValue `json:"type"`
	Content CodeValue `json:"content"`
	Private CodeValue `json:"private"`
	Status  CodeValue `json:"status"`
}

// Itemized reports whether the set is pre-materialized. Only itemized
// sets have a stable member list to enumerate.
func (s *Set) Itemized() bool {
	return s.Type.Value == "ITEMIZED"
}

// Public reports whether the set is visible beyond its owner.
func (s *Set) Public() bool {
	return s.Private.Value != "true"
}

type setList struct {
	TotalRecordCount int   `json:"total_record_count"`
	Sets             []Set `json:"set"`
}

type setMember struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

type memberList struct {
	TotalRecordCount int         `json:"total_record_count"`
	Members          []setMember `json:"member"`
}

func pageQuery(limit, offset int) url.Values {
	return url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
}

// ListSets returns one page of sets plus the total record count.
func (c *Client) ListSets(ctx context.Context, limit, offset int) ([]Set, int, error) {
	body, err := c.getJSON(ctx, PathSets, pageQuery(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	var list setList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, 0, fmt.Errorf("failed to parse set list: %w", err)
	}
	return list.Sets, list.TotalRecordCount, nil
}

// FindSetByName pages through the sets endpoint looking for an exact name
// match. Returns ErrSetNotFound if no set matches within the paging cap.
func (c *Client) FindSetByName(ctx context.Context, name string) (*Set, error) {
	for offset := 0; offset < maxOffset; offset += pageSize {
		sets, total, err := c.ListSets(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for i := range sets {
			if sets[i].Name == name {
				logging.Sets("resolved set %q to ID %s", name, sets[i].ID)
				return &sets[i], nil
			}
		}
		if len(sets) == 0 || offset+pageSize >= total {
			break
		}
	}
	return nil, fmt.Errorf("%w: name %q", ErrSetNotFound, name)
}

// GetSet fetches a single set by its ID.
func (c *Client) GetSet(ctx context.Context, setID string) (*Set, error) {
	body, err := c.getJSON(ctx, PathSets+"/"+url.PathEscape(setID), nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return nil, fmt.Errorf("%w: ID %q", ErrSetNotFound, setID)
		}
		return nil, err
	}
	var s Set
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to parse set: %w", err)
	}
	return &s, nil
}

// SetMembers returns the member record IDs of a set, de-duplicated and
// sorted. Pages with the standard window until the reported total is
// collected, an empty page comes back, or the paging cap is hit.
func (c *Client) SetMembers(ctx context.Context, setID string) ([]string, error) {
	path := PathSets + "/" + url.PathEscape(setID) + "/members"

	seen := make(map[string]struct{})
	total := 0
	for offset := 0; offset < maxOffset; offset += pageSize {
		body, err := c.getJSON(ctx, path, pageQuery(pageSize, offset))
		if err != nil {
			return nil, err
		}
		var list memberList
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to parse member list: %w", err)
		}
		total = list.TotalRecordCount
		if len(list.Members) == 0 {
			break
		}
		for _, m := range list.Members {
			seen[m.ID] = struct{}{}
		}
		logging.SetsDebug("set %s: collected %d/%d members", setID, len(seen), total)
		if len(seen) >= total {
			break
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: set %s", ErrNoMembers, setID)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	logging.Sets("set %s: %d members", setID, len(ids))
	return ids, nil
}
