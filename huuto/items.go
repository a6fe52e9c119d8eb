package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Enumerated parameter values accepted by the item endpoints.
var (
	itemConditions   = []string{"new", "like-new", "good", "acceptable", "weak"}
	deliveryMethods  = []string{"pickup", "shipment"}
	paymentMethods   = []string{"wire-transfer", "cash", "mobile-pay"}
	saleMethods      = []string{"auction", "buy-now"}
	createStatuses   = []string{"draft", "preview"}
	searchAddTimes   = []string{"past-day", "past-2days", "past-5days", "past-week"}
	searchConditions = []string{"none", "new", "like-new", "good", "acceptable", "weak"}
	searchSellStyles = []string{"all", "auction", "buy-now"}
	searchSorts      = []string{"hits", "newest", "closing", "lowprice", "highprice", "bidders", "title"}
)

// ItemParams holds the fields for creating or editing an item. Zero values
// ("" and nil) are omitted from the request. Monetary amounts are strings
// like "16.50" and are coerced to floats before sending.
//
// Items are created in "preview" status by default and cannot be created
// directly as "published"; publish with PublishItem after a successful
// preview. Creating in "draft" status needs no other parameters, which is
// useful for uploading images before asking the user for the rest.
type ItemParams struct {
	BuyNowPrice            string   // required when SaleMethod is "buy-now"
	CategoryID             *int
	ClosingTime            string   // "2006-01-02 15:04:05", paired with ListTime
	Condition              string   // new, like-new, good, acceptable, weak
	DeliveryMethods        []string // pickup, shipment
	DeliveryTerms          string
	Description            string
	IdentificationRequired *int // 0 or 1, Huuto Plus only
	IsLocationAbroad       *int // 0 or 1; when 1, PostalCode may be empty
	ListTime               string
	MarginalTax            *int // 0 or 1, company users only
	MinimumFeedback        *int // Huuto Plus only
	MinimumIncrease        string // auction only
	OffersAllowed          *int   // 0 or 1, default allowed
	OpenDays               *int   // alternative to ListTime/ClosingTime
	OriginalID             *int   // republish a closed item as a new draft
	PaymentMethods         []string // wire-transfer, cash, mobile-pay
	PaymentTerms           string
	PostalCode             string // required unless IsLocationAbroad is 1
	Quantity               *int   // mandatory for buy-now items
	Republish              *int   // 0 or 1, Huuto Plus only
	SaleMethod             string // auction, buy-now
	StartingPrice          string // required when SaleMethod is "auction"
	Status                 string // draft or preview on create; defaults to preview
	Title                  string // max 60 chars
	VAT                    *int   // 0-100, company users only
}

// itemOpMode distinguishes the create and edit validation rules: create
// enforces the cross-field requirements, edit is a partial update that only
// checks the fields actually set.
type itemOpMode int

const (
	modeCreate itemOpMode = iota
	modeEdit
)

// itemMoney carries the coerced monetary fields out of validation.
type itemMoney struct {
	buyNowPrice     *float64
	minimumIncrease *float64
	startingPrice   *float64
}

// validateItemParams runs the local pre-request checks shared by CreateItem
// and EditItem. The API silently ignores malformed parameters, so failing
// here is the only way the caller learns about them.
func validateItemParams(p *ItemParams, mode itemOpMode) (itemMoney, error) {
	var money itemMoney

	if p.BuyNowPrice != "" {
		f, err := parseMoney("buyNowPrice", p.BuyNowPrice)
		if err != nil {
			return money, err
		}
		money.buyNowPrice = &f
	}
	if p.MinimumIncrease != "" {
		f, err := parseMoney("minimumIncrease", p.MinimumIncrease)
		if err != nil {
			return money, err
		}
		money.minimumIncrease = &f
	}
	if p.StartingPrice != "" {
		f, err := parseMoney("startingPrice", p.StartingPrice)
		if err != nil {
			return money, err
		}
		money.startingPrice = &f
	}

	if err := oneOf("condition", p.Condition, itemConditions...); err != nil {
		return money, err
	}
	if p.ClosingTime != "" {
		if err := checkDateTime("closingTime", p.ClosingTime); err != nil {
			return money, err
		}
	}
	if p.ListTime != "" {
		if err := checkDateTime("listTime", p.ListTime); err != nil {
			return money, err
		}
	}
	for _, m := range p.DeliveryMethods {
		if err := oneOf("deliveryMethods", m, deliveryMethods...); err != nil {
			return money, err
		}
	}
	for _, m := range p.PaymentMethods {
		if err := oneOf("paymentMethods", m, paymentMethods...); err != nil {
			return money, err
		}
	}

	for field, v := range map[string]*int{
		"identificationRequired": p.IdentificationRequired,
		"isLocationAbroad":       p.IsLocationAbroad,
		"marginalTax":            p.MarginalTax,
		"offersAllowed":          p.OffersAllowed,
		"republish":              p.Republish,
	} {
		if err := zeroOne(field, v); err != nil {
			return money, err
		}
	}

	if p.IsLocationAbroad != nil && *p.IsLocationAbroad == 0 && p.PostalCode == "" {
		return money, &ValidationError{
			Field:  "postalCode",
			Reason: "required when isLocationAbroad is 0",
		}
	}

	if p.VAT != nil && (*p.VAT < 0 || *p.VAT > 100) {
		return money, &ValidationError{Field: "vat", Reason: "must be between 0 and 100"}
	}

	if err := oneOf("saleMethod", p.SaleMethod, saleMethods...); err != nil {
		return money, err
	}

	if p.Status != "" {
		if err := oneOf("status", p.Status, createStatuses...); err != nil {
			return money, err
		}
	}

	if mode == modeEdit {
		return money, nil
	}

	// Cross-field requirements, enforced on create only.
	if p.SaleMethod == "" {
		return money, &ValidationError{Field: "saleMethod", Reason: "required"}
	}
	if (p.ListTime != "") != (p.ClosingTime != "") {
		return money, &ValidationError{
			Field:  "listTime",
			Reason: "listTime and closingTime must be set together",
		}
	}
	if (p.ListTime != "") == (p.OpenDays != nil) {
		return money, &ValidationError{
			Field:  "openDays",
			Reason: "set either listTime/closingTime or openDays",
		}
	}
	if p.SaleMethod == "buy-now" && money.buyNowPrice == nil {
		return money, &ValidationError{
			Field:  "buyNowPrice",
			Reason: `required when saleMethod is "buy-now"`,
		}
	}
	if p.SaleMethod == "buy-now" && money.minimumIncrease != nil {
		return money, &ValidationError{
			Field:  "minimumIncrease",
			Reason: `only available when saleMethod is "auction"`,
		}
	}
	if p.SaleMethod == "auction" && money.startingPrice == nil {
		return money, &ValidationError{
			Field:  "startingPrice",
			Reason: `required when saleMethod is "auction"`,
		}
	}

	return money, nil
}

// CreateItem creates a new item. The payload goes as JSON because the
// delivery and payment method fields are arrays, which the API does not
// decode from form encoding.
func (c *Client) CreateItem(ctx context.Context, p ItemParams) (Document, error) {
	if p.Status == "" {
		p.Status = "preview"
	}
	if p.Quantity == nil {
		p.Quantity = Int(1)
	}

	money, err := validateItemParams(&p, modeCreate)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"categoryId":             intField(p.CategoryID),
		"closingTime":            stringField(p.ClosingTime),
		"condition":              stringField(p.Condition),
		"deliveryTerms":          stringField(p.DeliveryTerms),
		"description":            stringField(p.Description),
		"identificationRequired": intField(p.IdentificationRequired),
		"isLocationAbroad":       intField(p.IsLocationAbroad),
		"listTime":               stringField(p.ListTime),
		"marginalTax":            intField(p.MarginalTax),
		"minimumFeedback":        intField(p.MinimumFeedback),
		"offersAllowed":          intField(p.OffersAllowed),
		"openDays":               intField(p.OpenDays),
		"originalId":             intField(p.OriginalID),
		"paymentTerms":           stringField(p.PaymentTerms),
		"postalCode":             stringField(p.PostalCode),
		"quantity":               intField(p.Quantity),
		"republish":              intField(p.Republish),
		"saleMethod":             stringField(p.SaleMethod),
		"status":                 stringField(p.Status),
		"title":                  stringField(p.Title),
		"vat":                    intField(p.VAT),
	}
	if money.buyNowPrice != nil {
		data["buyNowPrice"] = *money.buyNowPrice
	}
	if money.minimumIncrease != nil {
		data["minimumIncrease"] = *money.minimumIncrease
	}
	if money.startingPrice != nil {
		data["startingPrice"] = *money.startingPrice
	}
	if len(p.PaymentMethods) > 0 {
		data["paymentMethods"] = p.PaymentMethods
	}
	if len(p.DeliveryMethods) > 0 {
		// The trailing space in the field name is what the live API has been
		// receiving all along. The docs also note delivery methods cannot
		// currently be set through the API; the result is always empty.
		data["deliveryMethods "] = p.DeliveryMethods
	}
	dropNil(data)

	return c.postJSON(ctx, "/items", data, true, http.StatusOK, http.StatusCreated)
}

// EditItem updates an item. Items can be edited only in preview or draft
// status. Items in preview status are invisible in the web UI and can only be
// fetched back with OwnItem.
func (c *Client) EditItem(ctx context.Context, itemID int, p ItemParams) (Document, error) {
	if p.Status == "" {
		p.Status = "preview"
	}

	money, err := validateItemParams(&p, modeEdit)
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	setString(data, "closingTime", p.ClosingTime)
	setString(data, "condition", p.Condition)
	setString(data, "deliveryTerms", p.DeliveryTerms)
	setString(data, "description", p.Description)
	setString(data, "listTime", p.ListTime)
	setString(data, "paymentTerms", p.PaymentTerms)
	setString(data, "postalCode", p.PostalCode)
	setString(data, "saleMethod", p.SaleMethod)
	setString(data, "status", p.Status)
	setString(data, "title", p.Title)
	setInt(data, "categoryId", p.CategoryID)
	setInt(data, "identificationRequired", p.IdentificationRequired)
	setInt(data, "isLocationAbroad", p.IsLocationAbroad)
	setInt(data, "marginalTax", p.MarginalTax)
	setInt(data, "offersAllowed", p.OffersAllowed)
	setInt(data, "openDays", p.OpenDays)
	setInt(data, "originalId", p.OriginalID)
	setInt(data, "quantity", p.Quantity)
	setInt(data, "republish", p.Republish)
	setInt(data, "vat", p.VAT)
	setFloat(data, "buyNowPrice", money.buyNowPrice)
	// The edit endpoint has always been sent these three under snake_case
	// names, unlike create which sends them camelCased. Possibly a latent
	// upstream quirk, but it is the wire format the live API has been
	// receiving; do not "fix" without confirming against the real API.
	setInt(data, "minimum_feedback", p.MinimumFeedback)
	setFloat(data, "minimum_increase", money.minimumIncrease)
	setFloat(data, "starting_price", money.startingPrice)
	for _, m := range p.DeliveryMethods {
		data.Add("deliveryMethods ", m)
	}
	for _, m := range p.PaymentMethods {
		data.Add("paymentMethods", m)
	}

	return c.put(ctx, itemPath(itemID), data, true, http.StatusOK, http.StatusCreated)
}

// PreviewItem moves an item to "preview" status, at which point the API
// validates all saved data. A previewed item can then be published.
func (c *Client) PreviewItem(ctx context.Context, itemID int) (Document, error) {
	return c.setItemStatus(ctx, itemID, "preview")
}

// PublishItem publishes an item, making it available for selling.
func (c *Client) PublishItem(ctx context.Context, itemID int) (Document, error) {
	return c.setItemStatus(ctx, itemID, "published")
}

// CloseItem closes an item. After closing, the item no longer accepts bids
// or offers; the highest bidder wins if the other conditions are met.
func (c *Client) CloseItem(ctx context.Context, itemID int) (Document, error) {
	return c.setItemStatus(ctx, itemID, "closed")
}

func (c *Client) setItemStatus(ctx context.Context, itemID int, status string) (Document, error) {
	data := url.Values{"status": {status}}
	return c.put(ctx, itemPath(itemID), data, true, http.StatusOK, http.StatusCreated)
}

// Item retrieves a public item.
func (c *Client) Item(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, itemPath(itemID), nil, false)
}

// OwnItem retrieves one of the caller's own items, including items in
// preview or draft status that the public endpoint cannot see.
func (c *Client) OwnItem(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, itemPath(itemID), nil, true)
}

// DeleteItem deletes an item. Only items in draft status can be deleted;
// the API answers 204 on success.
func (c *Client) DeleteItem(ctx context.Context, itemID int) (*http.Response, error) {
	return c.del(ctx, itemPath(itemID), true, http.StatusNoContent)
}

// ListItemsQuery holds the item search parameters. Zero values are omitted.
type ListItemsQuery struct {
	AddTime        string // past-day, past-2days, past-5days, past-week
	Area           string // city, municipality or zip code
	BidderNro      *int   // bidder's numeric user id
	Category       string // category id; multiples separated by commas or dashes
	Classification string // none, new, like-new, good, acceptable, weak
	ClosingTime    string // next-day, next-2days, next-5days, next-week
	FeedbackLimit  *int
	Limit          *int // 50 or 500, default 50
	Page           *int
	PriceMax       string // monetary, coerced to float
	PriceMin       string // monetary, coerced to float
	SellerType     string // company, user; default all
	SellerNro      *int
	SellStyle      string // all, auction, buy-now
	Sort           string // hits, newest, closing, lowprice, highprice, bidders, title
	Status         string // open, closed
	Words          string // search string
}

// ListItems searches items. Enum-valued parameters are validated locally:
// the API ignores a misspelled value without any feedback, the only hint
// being that the self link in the response does not echo the parameter back.
func (c *Client) ListItems(ctx context.Context, q ListItemsQuery) (Document, error) {
	if err := oneOf("addtime", q.AddTime, searchAddTimes...); err != nil {
		return nil, err
	}
	if err := oneOf("classification", q.Classification, searchConditions...); err != nil {
		return nil, err
	}
	if q.Limit != nil && *q.Limit != 50 && *q.Limit != 500 {
		return nil, &ValidationError{Field: "limit", Reason: "must be either 50 or 500"}
	}
	if err := oneOf("sellstyle", q.SellStyle, searchSellStyles...); err != nil {
		return nil, err
	}
	if err := oneOf("sort", q.Sort, searchSorts...); err != nil {
		return nil, err
	}

	params := url.Values{}
	setString(params, "addtime", q.AddTime)
	setString(params, "area", q.Area)
	setInt(params, "biddernro", q.BidderNro)
	setString(params, "category", q.Category)
	setString(params, "classification", q.Classification)
	setString(params, "closingtime", q.ClosingTime)
	setInt(params, "feedback_limit", q.FeedbackLimit)
	setInt(params, "limit", q.Limit)
	setInt(params, "page", q.Page)
	setString(params, "seller_type", q.SellerType)
	setInt(params, "sellernro", q.SellerNro)
	setString(params, "sellstyle", q.SellStyle)
	setString(params, "sort", q.Sort)
	setString(params, "status", q.Status)
	setString(params, "words", q.Words)

	if q.PriceMin != "" {
		f, err := parseMoney("price_min", q.PriceMin)
		if err != nil {
			return nil, err
		}
		params.Set("price_min", formatMoney(f))
	}
	if q.PriceMax != "" {
		f, err := parseMoney("price_max", q.PriceMax)
		if err != nil {
			return nil, err
		}
		params.Set("price_max", formatMoney(f))
	}

	return c.get(ctx, "/items", params, false)
}

// itemPath keeps the trailing slash the API routes item resources under.
func itemPath(itemID int) string {
	return fmt.Sprintf("/items/%d/", itemID)
}

func stringField(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intField(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func dropNil(data map[string]any) {
	for k, v := range data {
		if v == nil {
			delete(data, k)
		}
	}
}

func setString(data url.Values, key, value string) {
	if value != "" {
		data.Set(key, value)
	}
}

func setInt(data url.Values, key string, v *int) {
	if v != nil {
		data.Set(key, strconv.Itoa(*v))
	}
}

func setFloat(data url.Values, key string, v *float64) {
	if v != nil {
		data.Set(key, formatMoney(*v))
	}
}
