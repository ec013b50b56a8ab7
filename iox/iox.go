// Package iox holds small I/O cleanup helpers shared across the repo.
package iox

import "io"

// DiscardClose closes c, dropping the error. For deferred cleanup of
// response bodies and adapters, where a failed Close has no caller that
// could act on it:
//
//	defer iox.DiscardClose(resp.Body)
func DiscardClose(c io.Closer) { _ = c.Close() }
