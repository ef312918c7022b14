// Package sign is the seam between rendering and transport. Real XMLDSig
// enveloped-signature implementations live outside this module; callers
// inject them here so the report pipeline stays agnostic of key handling.
package sign

// Signer wraps a rendered oadrPayload document before it is handed to
// transport.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
}

// Passthrough is the default Signer: it returns the payload unchanged, for
// deployments that run with message signatures disabled.
type Passthrough struct{}

func (Passthrough) Sign(payload []byte) ([]byte, error) { return payload, nil }
