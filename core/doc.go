// Package core contains the Quarters client contracts, environment registry,
// response models, request builders and the endpoint table. Transport adapters
// depend on this package; core must not depend on a concrete transport.
package core
