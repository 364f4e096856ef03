// Package vault sella payloads derivados antes de persistirlos.
//
// Sellar es para almacenamiento, no para ocultar el resultado al caller
// inmediato: las operaciones del agente retornan el claro y el sellado.
// AES-256-GCM con clave por sujeto derivada (HKDF-SHA256) de la clave
// maestra del proceso.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"
)

const (
	masterKeyEnvVar   = "VAULT_MASTER_KEY"
	nonceSizeGCM      = 12  // AES-GCM nonce recomendado (96 bits)
	requiredKeyLength = 32  // 32 bytes => AES-256
	sep               = "|" // nonce|ciphertext (ambos en base64)
)

var (
	masterKey     []byte
	masterKeyOnce sync.Once
	loadErr       error
	mu            sync.RWMutex
)

// ensureLoaded carga la clave maestra desde VAULT_MASTER_KEY (base64) una sola vez.
func ensureLoaded() error {
	masterKeyOnce.Do(func() {
		mu.RLock()
		loaded := len(masterKey) == requiredKeyLength
		mu.RUnlock()
		if loaded {
			// Clave ya inyectada (tests); no pisar con el entorno.
			return
		}
		kb64 := strings.TrimSpace(os.Getenv(masterKeyEnvVar))
		if kb64 == "" {
			loadErr = fmt.Errorf("%s no seteada; genere una clave con: openssl rand -base64 32", masterKeyEnvVar)
			return
		}
		k, err := base64.StdEncoding.DecodeString(kb64)
		if err != nil {
			loadErr = fmt.Errorf("decode %s: %w", masterKeyEnvVar, err)
			return
		}
		if len(k) != requiredKeyLength {
			loadErr = fmt.Errorf("%s debe decodificar a %d bytes, obtuvo %d", masterKeyEnvVar, requiredKeyLength, len(k))
			return
		}
		mu.Lock()
		masterKey = make([]byte, len(k))
		copy(masterKey, k)
		mu.Unlock()
	})
	return loadErr
}

// IsReady expone si la clave está disponible (útil para healthchecks).
// Fuerza la carga desde el entorno: un proceso bien configurado reporta
// ready desde el arranque, no recién después del primer sellado.
func IsReady() bool {
	if err := ensureLoaded(); err != nil {
		return false
	}
	mu.RLock()
	defer mu.RUnlock()
	return len(masterKey) == requiredKeyLength
}

// subjectKey deriva la clave AES del sujeto vía HKDF-SHA256.
// Dos sujetos nunca comparten clave de sellado.
func subjectKey(subjectID string) ([]byte, error) {
	if err := ensureLoaded(); err != nil {
		return nil, err
	}
	mu.RLock()
	ikm := make([]byte, len(masterKey))
	copy(ikm, masterKey)
	mu.RUnlock()

	r := hkdf.New(sha256.New, ikm, nil, []byte("ethos/vault/"+subjectID))
	key := make([]byte, requiredKeyLength)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return key, nil
}

// Seal cifra plainText con la clave del sujeto y devuelve
// base64(nonce)|base64(ciphertext). La clave jamás viaja en el blob.
func Seal(subjectID, plainText string) (string, error) {
	key, err := subjectKey(subjectID)
	if err != nil {
		return "", err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSizeGCM)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce random: %w", err)
	}

	ct := aesgcm.Seal(nil, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(nonce) + sep + base64.StdEncoding.EncodeToString(ct), nil
}

// Open descifra un blob sellado para el sujeto dado.
func Open(subjectID, sealed string) (string, error) {
	key, err := subjectKey(subjectID)
	if err != nil {
		return "", err
	}

	parts := strings.Split(sealed, sep)
	if len(parts) != 2 {
		return "", errors.New("formato inválido: esperado base64(nonce)|base64(ciphertext)")
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(nonce) != nonceSizeGCM {
		return "", fmt.Errorf("nonce inválido: esperado %d bytes, obtuvo %d", nonceSizeGCM, len(nonce))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	pt, err := aesgcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("gcm auth/decrypt: %w", err)
	}
	return string(pt), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return aesgcm, nil
}

// Sealer es la interfaz que consume el orquestador.
type Sealer interface {
	Seal(subjectID, plainText string) (string, error)
	Open(subjectID, sealed string) (string, error)
}

// Std implementa Sealer sobre la clave maestra del proceso.
type Std struct{}

func (Std) Seal(subjectID, plainText string) (string, error) { return Seal(subjectID, plainText) }
func (Std) Open(subjectID, sealed string) (string, error)    { return Open(subjectID, sealed) }

// --- Helpers para tests ---

// UnsafeResetForTests borra estado interno. Usar sólo en tests.
func UnsafeResetForTests() {
	mu.Lock()
	masterKey = nil
	mu.Unlock()
	masterKeyOnce = sync.Once{}
	loadErr = nil
}

// UnsafeSetMasterKeyForTests permite setear una clave cruda (32 bytes) en tests.
func UnsafeSetMasterKeyForTests(k []byte) error {
	if len(k) != requiredKeyLength {
		return fmt.Errorf("clave inválida para test: se requieren %d bytes", requiredKeyLength)
	}
	UnsafeResetForTests()
	mu.Lock()
	masterKey = make([]byte, len(k))
	copy(masterKey, k)
	mu.Unlock()
	return nil
}
