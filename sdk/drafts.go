package codepad

import (
	"context"
	"fmt"
	"net/http"
)

// DraftsService reads and writes the caller's editor drafts. Requires a token.
type DraftsService struct {
	c *Client
}

// Get returns the saved draft for language, or its starter program.
func (s *DraftsService) Get(ctx context.Context, language string) (*Draft, error) {
	path := fmt.Sprintf("/drafts/%s", language)
	return doRequest[Draft](ctx, s.c, http.MethodGet, path, nil, http.StatusOK)
}

// Save stores the editor contents for language.
func (s *DraftsService) Save(ctx context.Context, language, code, input string) (*Draft, error) {
	path := fmt.Sprintf("/drafts/%s", language)
	body := SaveDraftRequest{Code: code, Input: input}
	return doRequest[Draft](ctx, s.c, http.MethodPut, path, body, http.StatusOK)
}

// Reset discards the draft for language.
func (s *DraftsService) Reset(ctx context.Context, language string) error {
	path := fmt.Sprintf("/drafts/%s", language)
	_, err := doRequest[StatusResponse](ctx, s.c, http.MethodDelete, path, nil, http.StatusOK)
	return err
}
