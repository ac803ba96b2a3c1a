package tuya

import (
	"bytes"
	"errors"
	"testing"
)

const testKey = "0123456789abcdef"

func TestCipher_RoundTrip(t *testing.T) {
	c, err := newPayloadCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	plain := []byte(`{"dps":{"3":1},"t":"1758445204"}`)
	got, err := c.decrypt(c.encrypt(plain))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("decrypt(encrypt(x)) = %q, want %q", got, plain)
	}
}

func TestCipher_BlockAlignedInput(t *testing.T) {
	c, err := newPayloadCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	// Exactly one block: padding adds a full extra block.
	plain := bytes.Repeat([]byte("x"), 16)
	enc := c.encrypt(plain)
	if len(enc) != 32 {
		t.Errorf("ciphertext length = %d, want 32", len(enc))
	}

	got, err := c.decrypt(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestCipher_WrongKeyLength(t *testing.T) {
	if _, err := newPayloadCipher("short"); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := newPayloadCipher("0123456789abcdef0"); err == nil {
		t.Error("expected error for long key")
	}
}

func TestCipher_RaggedCiphertext(t *testing.T) {
	c, err := newPayloadCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.decrypt([]byte("not a block multiple"))
	if !errors.Is(err, ErrCipher) {
		t.Fatalf("err = %v, want ErrCipher", err)
	}
}

func TestCipher_GarbagePadding(t *testing.T) {
	c, err := newPayloadCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	// Random-looking block decrypts to garbage padding almost surely.
	junk := bytes.Repeat([]byte{0xA5, 0x3C}, 8)
	if _, err := c.decrypt(junk); err == nil {
		t.Skip("junk block happened to decrypt to valid padding")
	}
}
