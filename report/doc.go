// Package report renders recorded call histories for people and tools.
//
// Records are first converted to [Entity] and [Call] values, which hold
// plain Go data only: host values such as JavaScript values are exported
// and functions are replaced by a placeholder. [JSON] then serializes with
// json-iterator and [Text] writes a human-readable listing.
package report
