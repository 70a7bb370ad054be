package alma

import (
	"context"
	"net/http"
	"net/url"

	"porenew/internal/logging"

	"github.com/tidwall/gjson"
)

// GetPOLine fetches the full PO line representation as raw JSON. The
// document is kept opaque: updates must submit the representation back
// unchanged apart from the fields being edited, so no intermediate
// struct mapping is done.
func (c *Client) GetPOLine(ctx context.Context, poLineID string) ([]byte, error) {
	body, err := c.getJSON(ctx, PathPOLines+"/"+url.PathEscape(poLineID), nil)
	if err != nil {
		return nil, err
	}
	logging.POLinesDebug("fetched PO line %s (number=%s)", poLineID, gjson.GetBytes(body, "number").String())
	return body, nil
}

// UpdatePOLine submits a full PO line representation as a PUT.
func (c *Client) UpdatePOLine(ctx context.Context, poLineID string, body []byte) error {
	path := PathPOLines + "/" + url.PathEscape(poLineID)
	req, err := c.newRequest(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	status, respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{Status: status, Path: path, Body: string(respBody)}
	}
	logging.POLines("updated PO line %s", poLineID)
	return nil
}
