// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	blobVersion = 1
	saltSize    = 16
	keySize     = 32
)

var (
	// ErrSealBroken is returned when a blob cannot be authenticated: wrong
	// device secret, truncated or modified data.
	ErrSealBroken = errors.New("sealed credential cannot be opened")

	// ErrEmptySecret is returned by NewSealer for an empty device secret.
	ErrEmptySecret = errors.New("device secret is empty")
)

// sealer is the private implementation of [Sealer].
type sealer struct {
	secret []byte

	// Argon2id tuning parameters. Kept on the struct so tests can use cheap
	// ones.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewSealer constructs a [Sealer] keyed by deviceSecret with the Argon2id
// parameters recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewSealer(deviceSecret string) (Sealer, error) {
	if deviceSecret == "" {
		return nil, ErrEmptySecret
	}
	return &sealer{
		secret:       []byte(deviceSecret),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}, nil
}

func (s *sealer) key(salt []byte) []byte {
	return argon2.IDKey(s.secret, salt, s.argonTime, s.argonMemory, s.argonThreads, keySize)
}

func (s *sealer) aead(salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key(salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal implements [Sealer].
func (s *sealer) Seal(v any) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal credential: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// the header is bound as additional data
	header := append([]byte{blobVersion}, salt...)

	blob := make([]byte, 0, len(header)+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce...)
	return gcm.Seal(blob, nonce, plaintext, header), nil
}

// Open implements [Sealer].
func (s *sealer) Open(blob []byte, target any) error {
	if len(blob) < 1+saltSize || blob[0] != blobVersion {
		return ErrSealBroken
	}
	header, salt := blob[:1+saltSize], blob[1:1+saltSize]

	gcm, err := s.aead(salt)
	if err != nil {
		return err
	}

	rest := blob[1+saltSize:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return ErrSealBroken
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSealBroken, err)
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal credential: %w", err)
	}
	return nil
}
