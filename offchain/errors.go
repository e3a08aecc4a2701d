package offchain

import "errors"

var (
	// ErrNilParam indicates a nil grant, signature, or signer key.
	ErrNilParam = errors.New("offchain: nil parameter")

	// ErrGrantExpired indicates the grant's expiry has passed.
	ErrGrantExpired = errors.New("offchain: grant expired")

	// ErrBadSignature indicates the signature does not verify against the
	// configured signer key.
	ErrBadSignature = errors.New("offchain: bad signature")

	// ErrMalformedSignature indicates the signature bytes are not valid DER.
	ErrMalformedSignature = errors.New("offchain: malformed signature")
)
