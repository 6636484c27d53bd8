package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Key is a named 32-byte symmetric key.
type Key struct {
	ID       string
	Material []byte
}

// NewKey copies material into a new Key. The caller keeps ownership of
// material and may zero it afterwards.
func NewKey(id string, material []byte) (*Key, error) {
	if len(material) != KeySize {
		return nil, fmt.Errorf("%w: key %q must be %d bytes, got %d", ErrInvalidKey, id, KeySize, len(material))
	}
	k := &Key{ID: id, Material: make([]byte, KeySize)}
	copy(k.Material, material)
	return k, nil
}

// KeyDecoder turns one configured key entry into raw key material. Plain
// deployments decode base62; KMS deployments unwrap a ciphertext.
type KeyDecoder func(ctx context.Context, id, encoded string) ([]byte, error)

// KeyRing holds the keys a deployment accepts, with one designated active.
//
// New tokens are encoded with the active key. Decoding tries the active key
// first and then the remaining keys in configuration order, which lets a key
// be rotated without invalidating tokens that are still within their TTL.
//
// A KeyRing is read-only after construction and safe for concurrent use.
type KeyRing struct {
	mu       sync.RWMutex
	activeID string
	keys     []*Key
}

// NewKeyRing builds a key ring from already decoded keys. activeID must name
// one of keys; ids must be unique.
func NewKeyRing(activeID string, keys ...*Key) (*KeyRing, error) {
	if activeID == "" {
		return nil, ErrActiveKeyIDNotSet
	}

	kr := &KeyRing{activeID: activeID}
	seen := make(map[string]struct{}, len(keys))
	var active *Key
	for _, k := range keys {
		if k.ID == "" {
			return nil, ErrEmptyKeyIdentifier
		}
		if _, dup := seen[k.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyID, k.ID)
		}
		seen[k.ID] = struct{}{}
		if k.ID == activeID {
			active = k
			continue
		}
		kr.keys = append(kr.keys, k)
	}

	if active == nil {
		return nil, fmt.Errorf("%w: %s", ErrActiveKeyNotFound, activeID)
	}
	kr.keys = append([]*Key{active}, kr.keys...)

	return kr, nil
}

// ParseKeyRing parses the BRANCA_KEYS format, "id:encoded[,id:encoded...]",
// decoding each entry with decode. Decoded material is copied into the ring
// and the temporary buffer zeroed.
func ParseKeyRing(ctx context.Context, raw, activeID string, decode KeyDecoder) (*KeyRing, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrKeysNotSet
	}
	if activeID == "" {
		return nil, ErrActiveKeyIDNotSet
	}

	var keys []*Key
	for part := range strings.SplitSeq(raw, ",") {
		id, encoded, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || id == "" || encoded == "" {
			ZeroKeys(keys)
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeysFormat, part)
		}

		material, err := decode(ctx, id, encoded)
		if err != nil {
			ZeroKeys(keys)
			return nil, fmt.Errorf("failed to decode key %s: %w", id, err)
		}

		key, err := NewKey(id, material)
		Zero(material)
		if err != nil {
			ZeroKeys(keys)
			return nil, err
		}
		keys = append(keys, key)
	}

	kr, err := NewKeyRing(activeID, keys...)
	if err != nil {
		ZeroKeys(keys)
		return nil, err
	}
	return kr, nil
}

// ActiveKeyID returns the id of the key used to encode new tokens.
func (kr *KeyRing) ActiveKeyID() string {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	return kr.activeID
}

// Active returns a copy of the active key. The caller owns the copy and
// should zero its Material when done.
func (kr *KeyRing) Active() (*Key, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	if len(kr.keys) == 0 {
		return nil, ErrKeyRingClosed
	}
	return kr.keys[0].clone(), nil
}

// Keys returns copies of the keys in decode order: active first. The caller
// owns the copies and should zero them with ZeroKeys when done.
func (kr *KeyRing) Keys() []*Key {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	out := make([]*Key, len(kr.keys))
	for i, k := range kr.keys {
		out[i] = k.clone()
	}
	return out
}

// Len returns the number of keys in the ring.
func (kr *KeyRing) Len() int {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	return len(kr.keys)
}

// Close zeroes the ring's key material and empties the ring. Copies already
// handed out by Active and Keys are not affected, so a decode in flight
// finishes with the key it started with.
func (kr *KeyRing) Close() {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	ZeroKeys(kr.keys)
	kr.keys = nil
	kr.activeID = ""
}

// ZeroKeys zeroes the material of every key.
func ZeroKeys(keys []*Key) {
	for _, k := range keys {
		Zero(k.Material)
	}
}

func (k *Key) clone() *Key {
	c := &Key{ID: k.ID, Material: make([]byte, len(k.Material))}
	copy(c.Material, k.Material)
	return c
}
