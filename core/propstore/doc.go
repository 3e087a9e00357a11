// Package propstore provides the client for the document-per-entity property
// store that persists the game library and the daily playtime records.
//
// # Typed properties
//
// Property values are modeled as a closed set of variants (Title, RichText,
// Number, Date, Select, MultiSelect, URL, Relation), each with its own
// serializer, instead of an ad hoc key/type/value map. A field the caller has
// no value for is left out of the Properties map entirely; the store treats a
// missing field differently from an explicit null, so a date without a value
// must never be serialized at all.
//
// # Pagination
//
// Database listings are cursor based: each page carries a has_more flag and
// an opaque next_cursor, and the page size is a fixed store constraint
// (DefaultPageSize). Walking a listing to exhaustion is the caller's job.
package propstore
