// Package microsoft provides shared Microsoft Graph API support.
//
// This package provides:
//   - An app-only HTTP client authenticated with the OAuth2 client-credentials grant
//   - Rate limiting for Microsoft Graph API requests
//   - Error handling for Microsoft Graph API responses
//
// # Client Credentials
//
// Tokens are requested from the tenant-specific endpoint:
//   - Token URL: https://login.microsoftonline.com/{tenant}/oauth2/v2.0/token
//   - Scope: https://graph.microsoft.com/.default
//
// Tokens are fetched lazily on the first request, so missing or invalid
// credentials never prevent construction; they fail the first Graph call.
//
// # Rate Limits
//
// Microsoft Graph allows approximately 10,000 requests per 10 minutes per app.
// This package paces requests with a conservative token bucket to avoid
// hitting quotas. A 429 response fails only the request that received it.
package microsoft
