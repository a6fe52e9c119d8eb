package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ItemOffers retrieves the offers made on an item.
func (c *Client) ItemOffers(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/items/%d/offers", itemID), nil, false)
}

// CreateOffer posts a price offer (hintaehdotus) on an item. The amount is
// in euros, eg. "16.50"; the message may be up to 255 characters.
func (c *Client) CreateOffer(ctx context.Context, itemID int, offer, message string) (Document, error) {
	amount, err := parseMoney("offer", offer)
	if err != nil {
		return nil, err
	}

	data := url.Values{
		"offer":   {formatMoney(amount)},
		"message": {message},
	}

	return c.postForm(ctx, fmt.Sprintf("/items/%d/offers", itemID), data, true,
		http.StatusOK, http.StatusCreated)
}

// AnswerOffer updates an offer's status. Sellers accept or refuse offers;
// buyers can cancel their own offer as long as the seller has not yet
// answered it.
func (c *Client) AnswerOffer(ctx context.Context, itemID, offerID int, status string) (Document, error) {
	data := url.Values{"status": {status}}

	// Singular "offer" is the path the live API routes this under, unlike
	// the plural collection path used for listing and creating.
	return c.put(ctx, fmt.Sprintf("/items/%d/offer/%d", itemID, offerID), data, true,
		http.StatusOK, http.StatusCreated)
}
