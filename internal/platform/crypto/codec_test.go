package crypto

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

var testKey = bytes.Repeat([]byte{0x42}, 32)

func TestNewCodec_RejectsBadKeyLength(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		if _, err := NewCodec(make([]byte, size)); err == nil {
			t.Errorf("expected error for %d-byte key", size)
		}
	}
}

func TestNewCodecFromHex(t *testing.T) {
	codec, err := NewCodecFromHex(hex.EncodeToString(testKey))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if codec == nil {
		t.Fatal("expected codec")
	}

	if _, err := NewCodecFromHex("not-hex"); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := NewCodecFromHex("abcd"); err == nil {
		t.Error("expected error for short hex key")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	for _, plaintext := range []string{"", "maria@example.com", "+55 11 98765-4321", strings.Repeat("x", 4096)} {
		ciphertext, err := codec.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if ciphertext == plaintext && plaintext != "" {
			t.Error("ciphertext equals plaintext")
		}

		got, err := codec.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %q want %q", got, plaintext)
		}
	}
}

func TestCodec_NoncesDiffer(t *testing.T) {
	codec, _ := NewCodec(testKey)

	a, _ := codec.Encrypt("same input")
	b, _ := codec.Encrypt("same input")
	if a == b {
		t.Error("expected distinct ciphertexts for the same plaintext")
	}
}

func TestCodec_RejectsTamperedCiphertext(t *testing.T) {
	codec, _ := NewCodec(testKey)

	raw, err := codec.EncryptBytes([]byte("sensitive"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF

	if _, err := codec.DecryptBytes(raw); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}

func TestCodec_RejectsShortCiphertext(t *testing.T) {
	codec, _ := NewCodec(testKey)

	if _, err := codec.DecryptBytes([]byte{0x01, 0x02}); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
	if _, err := codec.Decrypt("not base64 !!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestCodec_WrongKeyFails(t *testing.T) {
	codec1, _ := NewCodec(testKey)
	codec2, _ := NewCodec(bytes.Repeat([]byte{0x43}, 32))

	ciphertext, _ := codec1.Encrypt("secret")
	if _, err := codec2.Decrypt(ciphertext); err == nil {
		t.Error("expected decryption with wrong key to fail")
	}
}
