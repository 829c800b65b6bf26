package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects the client's persisted session credential at rest.
//
// The sealing key is derived from a device secret with Argon2id; every blob
// carries its own random salt and nonce:
//
//	blob = version(1) ‖ salt(16) ‖ nonce(12) ‖ AES-256-GCM(JSON(v))
type Sealer interface {
	// Seal serializes v to JSON and encrypts it.
	Seal(v any) ([]byte, error)

	// Open authenticates and decrypts a blob produced by Seal and unmarshals
	// the JSON into target, a non-nil pointer. A blob sealed under another
	// device secret, or tampered with, yields ErrSealBroken.
	Open(blob []byte, target any) error
}
