// Package mdm provides the HTTP client for the remote card and deck data
// sources (the Master Duel Meta site and API, and the YGOJSON card feed).
//
// The Client interface is the collaborator boundary for all network I/O:
// features consume parsed goquery documents, decoded JSON payloads or raw
// bytes, and never issue HTTP requests themselves. Request timeouts are
// enforced here and nowhere else.
//
// The mocks subpackage contains a testify mock of the Client interface for
// feature tests.
package mdm
