package huuto_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ItemQuestions(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items/8/questions", r.URL.Path)
		writeJSON(t, w, `{"questions":[]}`)
	}))

	_, err := c.ItemQuestions(context.Background(), 8)
	require.NoError(t, err)
}

func TestClient_CreateQuestion(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		// Questions go to the offers collection path on the live API.
		assert.Equal(t, "/items/8/offers", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Does it work?", r.PostFormValue("question"))

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, `{}`)
	}))

	_, err := c.CreateQuestion(context.Background(), 8, "Does it work?")
	require.NoError(t, err)
}

func TestClient_AnswerQuestion(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/items/8/question/2", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Yes, perfectly.", r.PostFormValue("answer"))
		writeJSON(t, w, `{}`)
	}))

	_, err := c.AnswerQuestion(context.Background(), 8, 2, "Yes, perfectly.")
	require.NoError(t, err)
}
