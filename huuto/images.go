package huuto

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ItemImages retrieves the images attached to an item.
func (c *Client) ItemImages(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/items/%d/images", itemID), nil, false)
}

// AddItemImage uploads an image to an item. The item must already exist and
// be in preview or draft status; creating the item as a draft first lets an
// application store images before asking the user for anything else.
func (c *Client) AddItemImage(ctx context.Context, itemID int, filename string, r io.Reader) (Document, error) {
	return c.postFile(ctx, fmt.Sprintf("/items/%d/images", itemID), filename, r, true)
}

// AddItemImageFile uploads the image file at path to an item.
func (c *Client) AddItemImageFile(ctx context.Context, itemID int, path string) (Document, error) {
	f, err := os.Open(path) //nolint:gosec // image path from trusted caller
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	return c.AddItemImage(ctx, itemID, filepath.Base(path), f)
}

// DeleteItemImage removes an image from an item. The API answers 204 on
// success.
func (c *Client) DeleteItemImage(ctx context.Context, itemID, imageID int) (*http.Response, error) {
	return c.del(ctx, fmt.Sprintf("/items/%d/images/%d", itemID, imageID), true,
		http.StatusNoContent)
}
