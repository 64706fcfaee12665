// Package domain defines the recipe value types, the persistence model, and
// the failure taxonomy shared by every layer of the application.
//
// The taxonomy is a closed set: NetworkFailure, StorageFailure, ParseFailure,
// and UnknownFailure are the only implementations of Failure, sealed by the
// unexported marker method. Every fallible operation in the data layer
// produces exactly one of these variants instead of leaking transport, codec,
// or database errors across the service boundary.
package domain

// Failure is the closed error taxonomy for the data layer. All variants
// implement error, so a Failure can be logged or wrapped like any other
// error, but callers are expected to switch on the concrete type (or compare
// against the variant constants) rather than string-match.
type Failure interface {
	error
	failure()
}

// NetworkFailure classifies transport-level and HTTP-status errors from the
// remote recipe API.
type NetworkFailure int

const (
	// NetworkTimeout covers any transport-level timeout: connect, request,
	// or socket deadline.
	NetworkTimeout NetworkFailure = iota
	// NetworkNoInternet covers generic I/O failures such as missing
	// connectivity or DNS resolution errors.
	NetworkNoInternet
	// NetworkUnauthorized maps HTTP 401 (bad or missing API key).
	NetworkUnauthorized
	// NetworkNotFound maps HTTP 404.
	NetworkNotFound
	// NetworkPaymentRequired maps HTTP 402 (API quota exhausted).
	NetworkPaymentRequired
	// NetworkUnknown is the catch-all for any other non-2xx response or
	// unclassified transport error.
	NetworkUnknown
)

func (f NetworkFailure) failure() {}

func (f NetworkFailure) Error() string {
	switch f {
	case NetworkTimeout:
		return "network failure: timeout"
	case NetworkNoInternet:
		return "network failure: no internet"
	case NetworkUnauthorized:
		return "network failure: unauthorized"
	case NetworkNotFound:
		return "network failure: not found"
	case NetworkPaymentRequired:
		return "network failure: payment required"
	default:
		return "network failure: unknown"
	}
}

// StorageFailure classifies local persistence errors.
type StorageFailure int

const (
	// StorageIO indicates a write or read against the local store failed.
	StorageIO StorageFailure = iota
	// StorageNotFound indicates a record expected to exist was missing.
	StorageNotFound
)

func (f StorageFailure) failure() {}

func (f StorageFailure) Error() string {
	if f == StorageNotFound {
		return "storage failure: not found"
	}
	return "storage failure: io"
}

// ParseFailure classifies deserialization errors, both for remote response
// bodies and for the encoded text blobs read back from the local store.
type ParseFailure int

// ParseJSON is the only parse variant: a payload or stored blob did not
// decode into the expected shape.
const ParseJSON ParseFailure = iota

func (f ParseFailure) failure() {}

func (f ParseFailure) Error() string { return "parse failure: json" }

// UnknownFailure is the catch-all for caller-side invalid-state conditions,
// e.g. a missing required identifier.
type UnknownFailure int

// UnknownUnspecified is the only unknown variant.
const UnknownUnspecified UnknownFailure = iota

func (f UnknownFailure) failure() {}

func (f UnknownFailure) Error() string { return "unknown failure" }
