package huuto

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Categories retrieves the category listing. Huuto has a three-level
// category system; maxDepth (1-3, default 3) controls how many hierarchy
// levels come back in a single call.
func (c *Client) Categories(ctx context.Context, maxDepth int) (Document, error) {
	if maxDepth == 0 {
		maxDepth = 3
	}
	params := url.Values{"max-depth": {strconv.Itoa(maxDepth)}}

	return c.get(ctx, "/categories", params, false)
}

// Category retrieves a single category.
func (c *Client) Category(ctx context.Context, categoryID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/categories/%d", categoryID), nil, false)
}

// SubCategories retrieves the subcategories of a category.
func (c *Client) SubCategories(ctx context.Context, categoryID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/categories/%d/subcategories", categoryID), nil, false)
}

// CategoryItems retrieves the items in a category, one page at a time.
func (c *Client) CategoryItems(ctx context.Context, categoryID, page int) (Document, error) {
	if page == 0 {
		page = 1
	}
	params := url.Values{"page": {strconv.Itoa(page)}}

	return c.get(ctx, fmt.Sprintf("/categories/%d/items", categoryID), params, false)
}
