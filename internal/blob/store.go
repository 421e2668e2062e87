// Package blob provides the photo store: binary uploads keyed by a
// path string, returning a retrievable URL.
package blob

import "context"

// Store is the photo store contract. Put writes data under the given
// path and returns the URL the object can later be fetched from.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
