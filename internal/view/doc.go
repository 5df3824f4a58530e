// Package view holds the pure state machines behind the terminal viewer.
// Views never perform I/O: callers mint a Token with a Begin* method, run the
// fetch elsewhere and hand the outcome back through the matching Apply*
// method. A result whose token is no longer the latest one issued for that
// view is dropped, so a slow response can never overwrite a newer one.
package view
