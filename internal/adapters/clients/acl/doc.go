// Package acl is the anti-corruption layer between dataset files and the
// domain. Dataset records use their own field names (the `_id` key, legacy
// `authorId`) and may come from a local directory or a remote host; this
// package decodes them, validates them and maps them onto domain types.
//
// Remote failures are translated to domain errors:
//   - 404 Not Found: [domain.ErrNotFound]
//   - other 4xx: [domain.ErrValidation]
//   - 5xx, transport errors and exhausted retries: [domain.ErrUnavailable]
package acl
