// Package ae3 reads the encrypted .ae3 container produced by the AE300
// Wizard software and extracts the raw flash sectors embedded in its XML
// payload.
package ae3

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	kdfIterations = 100
	kdfKeyLen     = 24
)

var (
	ErrCiphertextSize = errors.New("ciphertext length is not a multiple of the AES block size")
	ErrBadPadding     = errors.New("invalid block padding")
)

// Fixed key material of the container format.
var (
	containerPassword = []byte("E4Wv1100PW")
	containerSalt     = []byte{
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x0A, 0x0B, 0x0C,
	}
	containerIV = []byte{
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	}
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// deriveKey implements the container's iterated-SHA1 key schedule: the
// password+salt digest is rehashed iterations-1 times, and the key stream is
// the digest of that base prefixed with an ASCII counter.
func deriveKey(password, salt []byte, iterations, keyLen int) []byte {
	sum := sha1.Sum(append(append([]byte{}, password...), salt...))
	base := sum[:]
	for i := 0; i < iterations-2; i++ {
		sum = sha1.Sum(base)
		base = sum[:]
	}
	sum = sha1.Sum(base)
	key := append([]byte{}, sum[:]...)
	for counter := 1; len(key) < keyLen; counter++ {
		sum = sha1.Sum(append([]byte(strconv.Itoa(counter)), base...))
		key = append(key, sum[:]...)
	}
	return key[:keyLen]
}

// Decrypt turns raw container bytes into the decompressed XML document.
func Decrypt(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCiphertextSize, len(data))
	}
	block, err := aes.NewCipher(deriveKey(containerPassword, containerSalt, kdfIterations, kdfKeyLen))
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, containerIV).CryptBlocks(plain, data)
	plain, err = stripPadding(plain)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(bytes.NewReader(plain))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	defer zr.Close()
	xmlText, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return bytes.TrimPrefix(xmlText, utf8BOM), nil
}

// Encrypt is the inverse of Decrypt: it packs an XML document into container
// bytes the way the AE300 Wizard writes them. Used to fabricate synthetic
// dumps for tooling and tests.
func Encrypt(xmlText []byte) ([]byte, error) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(xmlText); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	plain := gz.Bytes()
	pad := aes.BlockSize - len(plain)%aes.BlockSize
	for i := 0; i < pad; i++ {
		plain = append(plain, byte(pad))
	}
	block, err := aes.NewCipher(deriveKey(containerPassword, containerSalt, kdfIterations, kdfKeyLen))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, containerIV).CryptBlocks(out, plain)
	return out, nil
}

// DecryptFile reads and decrypts a container from disk.
func DecryptFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	xmlText, err := Decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return xmlText, nil
}

func stripPadding(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, ErrBadPadding
	}
	pad := int(plain[len(plain)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(plain) {
		return nil, ErrBadPadding
	}
	for _, b := range plain[len(plain)-pad:] {
		if int(b) != pad {
			return nil, ErrBadPadding
		}
	}
	return plain[:len(plain)-pad], nil
}
