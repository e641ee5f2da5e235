// internal/storage/jsonstore_test.go
//
// 驗證 JSON 快照的寫入與讀回：內容一致、缺檔與壞檔回報正確錯誤。
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestJSONSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")

	orig := Snapshot{
		Meta: Meta{Note: "test"},
		Accounts: []PersistAccount{
			{ID: "a1b2c3", Owner: "Alice", Pin: "1234", PinScheme: "plain", Balance: 30,
				History: []string{"[t1]Account created for Alice", "[t2]Deposit + 50 → Balance = 0"}},
			{ID: "d4e5f6", Owner: "Bob", Pin: "0000", PinScheme: "plain", Balance: 0,
				History: []string{"[t3]Account created for Bob"}},
		},
	}

	if err := SaveSnapshot(path, orig); err != nil {
		t.Fatalf("SaveSnapshot err=%v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("tmp file should be renamed away, stat err=%v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot err=%v", err)
	}
	if !reflect.DeepEqual(loaded.Accounts, orig.Accounts) {
		t.Fatalf("accounts mismatch:\n got=%+v\nwant=%+v", loaded.Accounts, orig.Accounts)
	}
	if loaded.Meta.Storage != StorageKind || loaded.Meta.Version != CurrentVersion {
		t.Fatalf("meta mismatch: %+v", loaded.Meta)
	}
	if loaded.Meta.Timestamp.IsZero() {
		t.Fatalf("timestamp should be set on save")
	}
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")

	if err := SaveSnapshot(path, Snapshot{Accounts: []PersistAccount{{ID: "x", Balance: 1}}}); err != nil {
		t.Fatal(err)
	}
	if err := SaveSnapshot(path, Snapshot{}); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Accounts) != 0 {
		t.Fatalf("accounts=%d want=0", len(loaded.Accounts))
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrNoSnapshot) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want ErrNoSnapshot wrapping fs.ErrNotExist, got %v", err)
	}
}

func TestLoadSnapshotCorrupt(t *testing.T) {
	cases := map[string]string{
		"garbage":       "not json at all",
		"truncated":     `{"_meta":{"version":1},"accounts":[`,
		"unknown field": `{"_meta":{"version":1},"accounts":[],"extra":true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bank.json")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSnapshot(path); err == nil || errors.Is(err, ErrNoSnapshot) {
				t.Fatalf("want decode error, got %v", err)
			}
		})
	}
}

func TestLoadSnapshotUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(`{"_meta":{"storage":"json_snapshot","version":9},"accounts":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("want ErrUnsupportedVersion, got %v", err)
	}
}
