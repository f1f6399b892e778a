// Package cache provides a content-addressed disk cache with per-entry TTL.
//
// Blobs live under <root>/<last-two-key-chars>/<key>; sharding on the key
// suffix bounds directory fan-out. A flat index file db.data maps expiry
// epoch-seconds to blob paths, one "expiry=path" line per live entry.
// Expiry is lazy: entries are swept once per Open, never at Get time.
package cache
