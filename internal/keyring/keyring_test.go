package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetGetDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://habitus@localhost:5432/habitus?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() error = %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() error = %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestVaultSetTrimsAndRejectsEmpty(t *testing.T) {
	gokeyring.MockInit()
	v := Vault{Service: "habitus-test", User: "dsn"}

	if err := v.Set("   "); err == nil {
		t.Error("Set(blank) expected error")
	}
	if err := v.Set("  postgres://h@db/habitus\n"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := v.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "postgres://h@db/habitus" {
		t.Errorf("Get() = %q, want trimmed value", got)
	}
	if _, err := Default.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Default slot should be untouched, got err = %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
