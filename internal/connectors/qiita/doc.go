// Package qiita implements a content repository backed by the Qiita API v2.
//
// # Endpoints
//
//   - GET   /api/v2/authenticated_user/items  (paged through the Link header)
//   - POST  /api/v2/items
//   - PATCH /api/v2/items/:id
//
// # Authentication
//
// A personal access token (40 lower-case hex characters) is sent as a bearer
// token through golang.org/x/oauth2. The token is bound when the repository
// is constructed.
//
// # Rate Limiting
//
// Requests pass through a token bucket and then check the Rate-Remaining and
// Rate-Reset headers of the previous response, waiting for the reset when
// the quota is nearly spent.
//
// # Proxies
//
// The HTTP transport honours HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
package qiita
