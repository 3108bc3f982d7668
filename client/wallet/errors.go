package wallet

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingSecretManager is returned when an operation needs to derive addresses but no secret manager was
	// configured on the builder.
	ErrMissingSecretManager = errors.New("missing secret manager")

	// ErrMissingInput is returned when no available input satisfies a required sender or issuer address.
	ErrMissingInput = errors.New("missing input with required address")

	// ErrMissingEd25519Input is returned when no basic output could be found for a required ed25519 address.
	ErrMissingEd25519Input = errors.New("missing ed25519 input with required address")

	// ErrAddressNotFound is returned when a bounded address search did not find the requested address in the
	// configured index range.
	ErrAddressNotFound = errors.New("address not found in the given range")

	// ErrUnexpectedOutputType is returned when a ledger lookup returns an output of a different type than the chain
	// identifier it was queried with implies.
	ErrUnexpectedOutputType = errors.New("unexpected output type")

	// ErrMissingUnlockCondition is returned when a ledger lookup returns a chain output that lacks the unlock
	// condition its type mandates.
	ErrMissingUnlockCondition = errors.New("missing unlock condition")
)
