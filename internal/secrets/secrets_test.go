package secrets

import (
	"strings"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	c := Base64{}

	enc, err := c.Encode("secret")
	if err != nil {
		t.Fatal(err)
	}
	// Must match what legacy resources files contain.
	if enc != "c2VjcmV0" {
		t.Errorf("encoded = %q; want %q", enc, "c2VjcmV0")
	}

	dec, err := c.Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec != "secret" {
		t.Errorf("decoded = %q; want %q", dec, "secret")
	}
}

func TestBase64DecodeInvalid(t *testing.T) {
	if _, err := (Base64{}).Decode("not base64 !!!"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := strings.Repeat("k", 32)
	c, err := NewAESGCM(key)
	if err != nil {
		t.Fatal(err)
	}

	enc, err := c.Encode("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if enc == "hunter2" || strings.Contains(enc, "hunter2") {
		t.Error("ciphertext leaks plaintext")
	}

	dec, err := c.Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec != "hunter2" {
		t.Errorf("decoded = %q; want %q", dec, "hunter2")
	}

	// A different key must not decrypt.
	other, err := NewAESGCM(strings.Repeat("x", 32))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Decode(enc); err == nil {
		t.Error("decode with wrong key succeeded")
	}
}

func TestNewAESGCMKeyLength(t *testing.T) {
	if _, err := NewAESGCM("short"); err == nil {
		t.Error("expected error for short key")
	}
}

func TestForKey(t *testing.T) {
	c, err := ForKey("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(Base64); !ok {
		t.Errorf("ForKey(\"\") = %T; want Base64", c)
	}

	c, err = ForKey(strings.Repeat("k", 32))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*AESGCM); !ok {
		t.Errorf("ForKey(key) = %T; want *AESGCM", c)
	}
}
