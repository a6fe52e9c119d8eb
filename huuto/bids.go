package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// BidParams holds the parameters for placing a bid.
type BidParams struct {
	// Bid is the amount in euros, eg. "16.50". With Automate set it is the
	// maximum the user is willing to pay and the bidding automation will
	// work upward from the smallest winning price.
	Bid      string
	Automate int // 0 or 1, default 0
	// QuantityMin and QuantityMax apply to items with a quantity above one
	// (currently buy-now items only) and default to 1.
	QuantityMin int
	QuantityMax int
}

// ItemBids retrieves the bids on an item.
func (c *Client) ItemBids(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/items/%d/bids", itemID), nil, false)
}

// CreateBid places a bid on an item.
func (c *Client) CreateBid(ctx context.Context, itemID int, p BidParams) (Document, error) {
	bid, err := parseMoney("bid", p.Bid)
	if err != nil {
		return nil, err
	}
	if err := zeroOne("automate", &p.Automate); err != nil {
		return nil, err
	}
	if p.QuantityMin == 0 {
		p.QuantityMin = 1
	}
	if p.QuantityMax == 0 {
		p.QuantityMax = 1
	}

	data := url.Values{
		"itemid":      {strconv.Itoa(itemID)},
		"bid":         {formatMoney(bid)},
		"automate":    {strconv.Itoa(p.Automate)},
		"quantityMin": {strconv.Itoa(p.QuantityMin)},
		"quantityMax": {strconv.Itoa(p.QuantityMax)},
	}

	return c.postForm(ctx, fmt.Sprintf("/items/%d/bids", itemID), data, true,
		http.StatusOK, http.StatusCreated)
}
