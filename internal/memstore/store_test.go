package memstore

import (
	"testing"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/seed"
)

func TestCollectionOrderAndCRUD(t *testing.T) {
	c := NewCollection[string]()
	c.Put("a", "first")
	c.Put("b", "second")
	c.Put("c", "third")

	// Replacing keeps the original position.
	c.Put("a", "first-v2")

	all := c.All()
	if len(all) != 3 {
		t.Fatalf("Len = %d, want 3", len(all))
	}
	if all[0] != "first-v2" || all[2] != "third" {
		t.Errorf("order = %v, want [first-v2 second third]", all)
	}

	if ok := c.Update("b", func(string) string { return "updated" }); !ok {
		t.Error("Update(b) = false, want true")
	}
	if v, _ := c.Get("b"); v != "updated" {
		t.Errorf("Get(b) = %q, want updated", v)
	}
	if ok := c.Update("missing", func(s string) string { return s }); ok {
		t.Error("Update(missing) = true, want false")
	}

	if !c.Delete("b") {
		t.Error("Delete(b) = false, want true")
	}
	if c.Delete("b") {
		t.Error("second Delete(b) = true, want false")
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len after delete = %d, want 2", got)
	}
}

func TestCollectionDeleteFunc(t *testing.T) {
	c := NewCollection[int]()
	for i, id := range []string{"a", "b", "c", "d"} {
		c.Put(id, i)
	}

	n := c.DeleteFunc(func(v int) bool { return v%2 == 0 })
	if n != 2 {
		t.Fatalf("DeleteFunc removed %d, want 2", n)
	}
	all := c.All()
	if len(all) != 2 || all[0] != 1 || all[1] != 3 {
		t.Errorf("remaining = %v, want [1 3]", all)
	}
}

func TestSeedIdempotent(t *testing.T) {
	s, err := New("main", "en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := s.Contacts.Len()
	for i := 0; i < 3; i++ {
		if err := s.Seed(); err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
	}
	if got := s.Contacts.Len(); got != want {
		t.Errorf("contacts after reseeding = %d, want %d", got, want)
	}

	admin, ok := s.UserByUsername(seed.AdminUsername)
	if !ok {
		t.Fatal("seeded admin not found")
	}
	if admin.Role != model.RoleAdmin || !admin.Active {
		t.Errorf("seeded admin = %+v, want active admin", admin)
	}
}

func TestResetRestoresBaseline(t *testing.T) {
	s, err := New("main", "en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	baseline := s.Products.Len()

	s.Products.Put("extra", model.Product{ID: "extra", Site: "main", Name: "Extra"})
	s.Contacts.DeleteFunc(func(model.Contact) bool { return true })

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := s.Products.Len(); got != baseline {
		t.Errorf("products after reset = %d, want %d", got, baseline)
	}
	if _, ok := s.Products.Get("extra"); ok {
		t.Error("extra product survived reset")
	}
	if s.Contacts.Len() == 0 {
		t.Error("seeded contacts missing after reset")
	}
}

func TestSeededIDsAreStable(t *testing.T) {
	a, err := New("main", "en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New("main", "en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pa, pb := a.BlogPosts.All(), b.BlogPosts.All()
	if len(pa) != len(pb) {
		t.Fatalf("post counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].ID != pb[i].ID {
			t.Errorf("post %d ID differs across stores: %s vs %s", i, pa[i].ID, pb[i].ID)
		}
	}
}
