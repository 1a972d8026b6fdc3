// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// tokenExpirySkew is how early a cached token is considered expired, so a
// token is refreshed before it expires mid-request.
const tokenExpirySkew = 30 * time.Second

// CredentialProvider exchanges Zoom Server-to-Server OAuth service-account
// credentials for short-lived bearer tokens. The token source caches the token
// until expiry and serializes refreshes, so concurrent synchronizations reuse
// one exchange.
type CredentialProvider struct {
	config      Config
	tokenSource oauth2.TokenSource
}

// NewCredentialProvider creates a new credential provider for the given
// service-account configuration.
func NewCredentialProvider(config Config) *CredentialProvider {
	config = config.withDefaults()

	// Zoom Server-to-Server OAuth is the client-credentials grant with a
	// non-standard grant_type and an account_id parameter. Client id and
	// secret go in the Authorization header (HTTP Basic).
	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.AuthURL,
		EndpointParams: url.Values{
			"grant_type": []string{"account_credentials"},
			"account_id": []string{config.AccountID},
		},
		AuthStyle: oauth2.AuthStyleInHeader,
	}

	// The exchange uses its own client with the configured timeout.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: config.Timeout,
	})

	return &CredentialProvider{
		config:      config,
		tokenSource: oauth2.ReuseTokenSourceWithExpiry(nil, oauthConfig.TokenSource(ctx), tokenExpirySkew),
	}
}

// Token returns a bearer token for the configured account, reusing the cached
// token while it remains valid.
func (p *CredentialProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	if p.config.AccountID == "" || p.config.ClientID == "" || p.config.ClientSecret == "" {
		return nil, domain.NewAuthError("zoom service-account credentials not configured")
	}

	token, err := p.tokenSource.Token()
	if err != nil {
		slog.ErrorContext(ctx, "zoom token exchange failed", logging.ErrKey, err)
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, domain.NewAuthError(
				fmt.Sprintf("token exchange rejected with status %d", retrieveErr.Response.StatusCode), err)
		}
		return nil, domain.NewAuthError("token exchange request failed", err)
	}

	return token, nil
}
