// Package repository implements the persistence boundary over MySQL. The
// stores expose the narrow find/update contracts the rest of the service
// is written against; lookups return (nil, nil) for absent records and
// mutations report ErrNotFound so handlers can map failures without
// knowing the engine.
package repository

import "errors"

// ErrNotFound is returned by update and delete operations that matched no
// row. Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")
