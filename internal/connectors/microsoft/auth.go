package microsoft

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/sharepoint-mcp/internal/config"
)

// NewClient returns an HTTP client that authenticates every request with an
// app-only token from the client-credentials grant.
//
// No token is requested here. The first request fetches one, so empty or
// wrong credentials only fail when the first Graph call is made. ctx scopes
// token retrieval and must outlive the client.
func NewClient(ctx context.Context, cfg *config.Config) *http.Client {
	base := &http.Client{Timeout: cfg.RequestTimeout}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
		Scopes:       []string{config.DefaultGraphScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	client := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	client.Timeout = cfg.RequestTimeout
	return client
}

// ClassifyRequestError maps a failed client.Do into an UpstreamError.
// Token endpoint rejections become ErrUnauthorised carrying the token
// endpoint's status.
func ClassifyRequestError(op string, err error) *UpstreamError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return NewUpstreamError(op, status, fmt.Errorf("%w: token request failed: %w", ErrUnauthorised, err))
	}
	return NewUpstreamError(op, 0, err)
}
