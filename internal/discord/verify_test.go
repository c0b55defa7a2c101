// file: internal/discord/verify_test.go
// version: 1.0.0
// guid: 5d6e7f8a-9b0c-4d1e-8f2a-3b4c5d6e7f8b

package discord

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	body := []byte(`{"type":1}`)
	timestamp := "1700000000"
	signature := ed25519.Sign(private, append([]byte(timestamp), body...))

	publicHex := hex.EncodeToString(public)
	signatureHex := hex.EncodeToString(signature)

	if !VerifySignature(publicHex, signatureHex, timestamp, body) {
		t.Error("Expected a valid signature to verify")
	}

	if VerifySignature(publicHex, signatureHex, "1700000001", body) {
		t.Error("Expected verification to fail for a different timestamp")
	}
	if VerifySignature(publicHex, signatureHex, timestamp, []byte(`{"type":2}`)) {
		t.Error("Expected verification to fail for a tampered body")
	}
}

func TestVerifySignatureBadInputs(t *testing.T) {
	if VerifySignature("not-hex", "also-not-hex", "0", nil) {
		t.Error("Expected failure for non-hex inputs")
	}
	if VerifySignature("abcd", "abcd", "0", nil) {
		t.Error("Expected failure for wrong key/signature sizes")
	}
}

func TestInteractionIsAdmin(t *testing.T) {
	cases := []struct {
		permissions string
		want        bool
	}{
		{"8", true},
		{"2147483647", true},
		{"0", false},
		{"4", false},
		{"garbage", false},
	}

	for _, tc := range cases {
		interaction := &Interaction{Member: &Member{Permissions: tc.permissions}}
		if got := interaction.IsAdmin(); got != tc.want {
			t.Errorf("IsAdmin with permissions %q = %v, want %v", tc.permissions, got, tc.want)
		}
	}

	var noMember Interaction
	if noMember.IsAdmin() {
		t.Error("Expected IsAdmin false without a member")
	}
}
