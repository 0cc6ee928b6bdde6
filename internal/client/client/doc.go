// Package client contains the storefront backend client and local database
// bootstrap for the CLI.
//
// # Overview
//
//  1. Client: the transport-agnostic contract (OpenSession, EndSession,
//     Login, ListOrders, TrackOrder, Ping). Calls return Result values
//     instead of (value, error) so the "success or error" shape of the
//     backend is kept explicit.
//  2. HTTPClient: JSON over HTTP. Every request carries X-Request-Id and
//     X-Store-Id; authenticated calls add a Bearer token.
//  3. InitDatabase / RunMigrations: open the SQLite file and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// Backend-reported failures are *APIError. Transport failures wrap
// ErrUnavailable. APIError also matches ErrUnauthorized, ErrUnavailable and
// common.ErrorNotFound through errors.Is, based on the HTTP status.
package client
