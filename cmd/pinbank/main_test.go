package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinbank/internal/bank"
	"pinbank/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	cfg := config.Config{IDLength: 8, PinScheme: bank.SchemePlain}

	b := newBank(cfg)
	a, err := b.CreateAccount("Alice", "1234")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Deposit(50); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := saveBank(b, path, quietLogger(), &out); err != nil {
		t.Fatalf("saveBank err=%v", err)
	}

	b2 := newBank(cfg)
	out.Reset()
	loadBank(b2, path, quietLogger(), &out)
	if !strings.Contains(out.String(), "Loaded bank data") {
		t.Fatalf("output=%q", out.String())
	}
	got, err := b2.Login(a.ID(), "1234")
	if err != nil {
		t.Fatalf("Login after reload err=%v", err)
	}
	if got.Balance() != 50 || len(got.History()) != 2 {
		t.Fatalf("reloaded account balance=%d history=%d", got.Balance(), len(got.History()))
	}
}

func TestLoadMissingOrCorruptStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		path string
		msg  string
	}{
		"missing": {filepath.Join(dir, "missing.json"), "No saved data found"},
		"corrupt": {corrupt, "could not be read"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			b := newBank(config.Config{IDLength: 6})
			var out bytes.Buffer
			loadBank(b, c.path, quietLogger(), &out)
			if b.Len() != 0 {
				t.Fatalf("Len=%d want=0", b.Len())
			}
			if !strings.Contains(out.String(), c.msg) {
				t.Fatalf("output=%q want %q", out.String(), c.msg)
			}
		})
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "bank.json")
	var out bytes.Buffer
	if err := saveBank(newBank(config.Config{IDLength: 6}), path, quietLogger(), &out); err == nil {
		t.Fatal("want error for unwritable path")
	}
	if !strings.Contains(out.String(), "Failed to save bank data") {
		t.Fatalf("output=%q", out.String())
	}
}

func TestNewBankUsesConfiguredScheme(t *testing.T) {
	b := newBank(config.Config{IDLength: 12, PinScheme: bank.SchemeBcrypt})
	a, err := b.CreateAccount("A", "4321")
	if err != nil {
		t.Fatal(err)
	}
	if len(a.ID()) != 12 {
		t.Fatalf("id length=%d want=12", len(a.ID()))
	}
	snap := b.Snapshot()
	if snap.Accounts[0].PinScheme != bank.SchemeBcrypt || snap.Accounts[0].Pin == "4321" {
		t.Fatalf("pin should be stored hashed: %+v", snap.Accounts[0])
	}
}
