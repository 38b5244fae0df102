// Package cipher provides the pluggable blob codecs applied by the
// persistence layer before a serialized store is written and after it is
// read. The store itself never sees encrypted data.
//
// Implementations:
//
//   - NewPlain: identity, used when no encryption key is configured.
//   - NewPassphrase: derives a 256 bit key from a passphrase with scrypt and
//     seals blobs with XChaCha20-Poly1305. A sealed blob carries its salt and
//     nonce, so any instance created with the same passphrase can open it.
package cipher
