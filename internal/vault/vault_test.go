package vault

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"
)

func testKey(seed byte) []byte {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed + byte(i)
	}
	return raw
}

func TestSealOpen_RoundTrip(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey(1)); err != nil {
		t.Fatal(err)
	}

	msg := `{"environmental_importance":5}`
	sealed, err := Seal("u1", msg)
	if err != nil {
		t.Fatalf("Seal err: %v", err)
	}
	pt, err := Open("u1", sealed)
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	if pt != msg {
		t.Fatalf("plaintext mismatch: got %q want %q", pt, msg)
	}
}

func TestOpen_WrongSubjectFails(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey(7)); err != nil {
		t.Fatal(err)
	}

	sealed, err := Seal("u1", "private data")
	if err != nil {
		t.Fatalf("Seal err: %v", err)
	}
	// La clave de u2 es distinta: GCM debe rechazar el blob de u1.
	if _, err := Open("u2", sealed); err == nil {
		t.Fatal("expected auth error opening another subject's blob")
	}
}

func TestOpen_DetectsTamper(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey(33)); err != nil {
		t.Fatal(err)
	}

	sealed, err := Seal("u1", "top secret")
	if err != nil {
		t.Fatalf("Seal err: %v", err)
	}
	parts := strings.Split(sealed, "|")
	if len(parts) != 2 {
		t.Fatalf("unexpected sealed format")
	}
	bs, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatal(err)
	}
	bs[0] ^= 0x01 // flip
	corrupted := parts[0] + "|" + base64.StdEncoding.EncodeToString(bs)

	if _, err := Open("u1", corrupted); err == nil {
		t.Fatal("expected auth error, got nil")
	}
}

func TestSeal_ErrorWhenNoKey(t *testing.T) {
	UnsafeResetForTests()
	os.Unsetenv("VAULT_MASTER_KEY")

	if _, err := Seal("u1", "x"); err == nil {
		t.Fatal("expected error when master key missing")
	}
}

func TestIsReady_LoadsKeyEagerly(t *testing.T) {
	UnsafeResetForTests()
	os.Setenv("VAULT_MASTER_KEY", base64.StdEncoding.EncodeToString(testKey(55)))
	defer func() {
		os.Unsetenv("VAULT_MASTER_KEY")
		UnsafeResetForTests()
	}()

	// Sin sellar nada antes: la configuración alcanza para estar ready.
	if !IsReady() {
		t.Fatal("IsReady must report true from configuration alone")
	}
}

func TestIsReady_FalseWithoutKey(t *testing.T) {
	UnsafeResetForTests()
	os.Unsetenv("VAULT_MASTER_KEY")

	if IsReady() {
		t.Fatal("IsReady must be false when no key is configured")
	}
}

func TestMasterKeyFromEnv(t *testing.T) {
	UnsafeResetForTests()
	os.Setenv("VAULT_MASTER_KEY", base64.StdEncoding.EncodeToString(testKey(99)))
	defer func() {
		os.Unsetenv("VAULT_MASTER_KEY")
		UnsafeResetForTests()
	}()

	sealed, err := Seal("u1", "hola")
	if err != nil {
		t.Fatalf("Seal err: %v", err)
	}
	pt, err := Open("u1", sealed)
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	if pt != "hola" {
		t.Fatalf("got %q", pt)
	}
	if !IsReady() {
		t.Fatal("IsReady must be true after load")
	}
}
