package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
)

func TestRegisterDefaults(t *testing.T) {
	d := NewDirectory()

	for i := 1; i <= 12; i++ {
		u, err := d.Register(core.ConnID(fmt.Sprintf("c%d", i)))
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		want := fmt.Sprintf("user%03d", i)
		if u.Username != want {
			t.Errorf("register %d: expected %q, got %q", i, want, u.Username)
		}
		if u.Room != domain.DefaultRoom {
			t.Errorf("register %d: expected default room, got %q", i, u.Room)
		}
	}
}

func TestRegisterTwice(t *testing.T) {
	d := NewDirectory()

	if _, err := d.Register("A"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Register("A"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRename(t *testing.T) {
	d := NewDirectory()
	_, _ = d.Register("A")
	_, _ = d.Register("B")

	tests := []struct {
		name    string
		cid     core.ConnID
		newName string
		wantErr error
	}{
		{name: "free name", cid: "A", newName: "alice", wantErr: nil},
		{name: "taken by other", cid: "B", newName: "alice", wantErr: ErrUsernameTaken},
		{name: "case sensitive", cid: "B", newName: "Alice", wantErr: nil},
		{name: "own current name", cid: "A", newName: "alice", wantErr: nil},
		{name: "unknown connection", cid: "ghost", newName: "zed", wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Rename(tt.cid, tt.newName); !errors.Is(err, tt.wantErr) {
				t.Errorf("Rename(%s, %q) = %v, want %v", tt.cid, tt.newName, err, tt.wantErr)
			}
		})
	}

	if u, _ := d.Lookup("B"); u.Username != "Alice" {
		t.Errorf("expected B renamed to Alice, got %q", u.Username)
	}
}

func TestConflictLeavesBothUnchanged(t *testing.T) {
	d := NewDirectory()
	_, _ = d.Register("A")
	_, _ = d.Register("B")

	_ = d.Rename("A", "alice")
	if err := d.Rename("B", "alice"); err == nil {
		t.Fatal("expected conflict")
	}

	a, _ := d.Lookup("A")
	b, _ := d.Lookup("B")
	if a.Username != "alice" || b.Username != "user002" {
		t.Errorf("conflict must not touch either side: a=%q b=%q", a.Username, b.Username)
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	d := NewDirectory()
	_, _ = d.Register("A")

	d.Unregister("A")
	if _, ok := d.Lookup("A"); ok {
		t.Error("user should be gone")
	}
	d.Unregister("A") // no-op

	// A freed name is available again.
	_, _ = d.Register("B")
	if err := d.Rename("B", "user001"); err != nil {
		t.Errorf("freed username should be reusable: %v", err)
	}
}
