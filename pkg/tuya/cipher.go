package tuya

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// payloadCipher encrypts and decrypts protocol payloads with the device's
// local key. Protocol 3.3 uses AES-128 in ECB mode with PKCS#7 padding.
type payloadCipher struct {
	block cipher.Block
}

// newPayloadCipher creates a cipher from the 16-byte local key.
func newPayloadCipher(key string) (*payloadCipher, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("local key must be %d bytes, got %d", aes.BlockSize, len(key))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	return &payloadCipher{block: block}, nil
}

// encrypt pads plain to the block size and encrypts it block by block.
func (c *payloadCipher) encrypt(plain []byte) []byte {
	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		c.block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	return out
}

// decrypt decrypts data and strips the padding.
func (c *payloadCipher) decrypt(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d", ErrCipher, len(data))
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		c.block.Decrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrCipher)
	}

	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("%w: invalid padding byte %d", ErrCipher, pad)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("%w: inconsistent padding", ErrCipher)
		}
	}

	return data[:len(data)-pad], nil
}
