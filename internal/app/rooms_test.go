package app

import (
	"testing"

	"github.com/parlorchat/parlor/internal/domain"
)

func hasRoom(infos []RoomInfo, name domain.RoomName) (RoomInfo, bool) {
	for _, info := range infos {
		if info.Name == name {
			return info, true
		}
	}
	return RoomInfo{}, false
}

func TestDefaultRoomAlwaysListed(t *testing.T) {
	r := NewRoomRegistry()

	info, ok := hasRoom(r.ListRooms(), domain.DefaultRoom)
	if !ok {
		t.Fatal("General must exist from the start")
	}
	if info.UserCount != 0 {
		t.Errorf("expected empty General, got %d", info.UserCount)
	}

	r.Join("A", domain.DefaultRoom)
	r.Leave("A", domain.DefaultRoom)

	if _, ok := hasRoom(r.ListRooms(), domain.DefaultRoom); !ok {
		t.Error("General must survive being emptied")
	}
}

func TestRoomLifecycle(t *testing.T) {
	r := NewRoomRegistry()

	r.Join("A", "Lounge")
	r.Join("B", "Lounge")
	if n := r.MemberCount("Lounge"); n != 2 {
		t.Errorf("expected 2 members, got %d", n)
	}

	r.Leave("A", "Lounge")
	if _, ok := hasRoom(r.ListRooms(), "Lounge"); !ok {
		t.Error("Lounge should still exist with one member")
	}

	r.Leave("B", "Lounge")
	if _, ok := hasRoom(r.ListRooms(), "Lounge"); ok {
		t.Error("Lounge should be reaped once empty")
	}
	if n := r.MemberCount("Lounge"); n != 0 {
		t.Errorf("absent room must count 0, got %d", n)
	}

	// Recreated rooms start fresh.
	r.Join("C", "Lounge")
	if n := r.MemberCount("Lounge"); n != 1 {
		t.Errorf("recreated room should have exactly the new joiner, got %d", n)
	}
}

func TestLeaveAbsentRoom(t *testing.T) {
	r := NewRoomRegistry()
	r.Leave("A", "Nowhere") // no-op
	if _, ok := hasRoom(r.ListRooms(), "Nowhere"); ok {
		t.Error("leave must not create rooms")
	}
}

func TestJoinIsIdempotentPerConnection(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("A", "Lounge")
	r.Join("A", "Lounge")
	if n := r.MemberCount("Lounge"); n != 1 {
		t.Errorf("set semantics: expected 1, got %d", n)
	}
}

func TestMemberUsernames(t *testing.T) {
	d := NewDirectory()
	_, _ = d.Register("A") // user001
	_, _ = d.Register("B") // user002
	_ = d.Rename("B", "alice")

	r := NewRoomRegistry()
	r.Join("A", domain.DefaultRoom)
	r.Join("B", domain.DefaultRoom)

	got := r.MemberUsernames(domain.DefaultRoom, d)
	want := []string{"alice", "user001"} // sorted
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("roster[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}

	if got := r.MemberUsernames("Nowhere", d); len(got) != 0 {
		t.Errorf("absent room must yield an empty roster, got %v", got)
	}
}

func TestListRoomsSorted(t *testing.T) {
	r := NewRoomRegistry()
	r.Join("A", "Zoo")
	r.Join("B", "Attic")

	infos := r.ListRooms()
	if len(infos) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name > infos[i].Name {
			t.Errorf("listing not sorted: %+v", infos)
		}
	}
}
