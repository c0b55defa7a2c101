// file: internal/discord/verify.go
// version: 1.0.0
// guid: 7c8d9e0f-1a2b-4c3d-8e4f-5a6b7c8d9e0f

package discord

import (
	"crypto/ed25519"
	"encoding/hex"
)

// VerifySignature checks the ed25519 signature Discord attaches to every
// interactions request. The signed payload is the timestamp header
// concatenated with the raw request body.
func VerifySignature(publicKeyHex, signatureHex, timestamp string, body []byte) bool {
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
