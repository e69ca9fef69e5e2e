package geo

import (
	"testing"

	"github.com/uzretail/storebot/config"
)

func testStores() []config.StoreConfig {
	return []config.StoreConfig{
		{Key: "main", Name: "Asosiy Do'kon", Address: "Yunusobod", Latitude: 41.311081, Longitude: 69.240562},
		{Key: "branch", Name: "Filial Do'kon", Address: "Mirzo Ulug'bek", Latitude: 41.338133, Longitude: 69.332839},
	}
}

func TestNewRegistryEmpty(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatal("expected error for empty registry")
	}
}

func TestNewRegistryDuplicateKey(t *testing.T) {
	stores := testStores()
	stores[1].Key = "main"
	if _, err := NewRegistry(stores); err == nil {
		t.Fatal("expected error for duplicate key")
	}
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r, err := NewRegistry(testStores())
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 stores, got %d", r.Len())
	}
	if r.Stores()[0].Key != "main" || r.Stores()[1].Key != "branch" {
		t.Errorf("registry order not preserved: %+v", r.Stores())
	}
	if _, ok := r.Get("branch"); !ok {
		t.Error("expected to find store branch")
	}
	if _, ok := r.Get("warehouse"); ok {
		t.Error("did not expect to find store warehouse")
	}
}

func TestNearestPicksCloserStore(t *testing.T) {
	r, err := NewRegistry(testStores())
	if err != nil {
		t.Fatal(err)
	}

	// A point sitting almost on top of the branch store.
	user := Coordinate{Latitude: 41.3380, Longitude: 69.3330}
	key, all, err := r.Nearest(user)
	if err != nil {
		t.Fatal(err)
	}
	if key != "branch" {
		t.Errorf("expected branch, got %s", key)
	}
	if len(all) != 2 {
		t.Errorf("expected distances for all stores, got %d", len(all))
	}
	if all["branch"].Km >= all["main"].Km {
		t.Errorf("branch should be closer: %v vs %v", all["branch"].Km, all["main"].Km)
	}
}

func TestNearestTieBreakDeterministic(t *testing.T) {
	// Two stores at the identical location: the first in registry order must
	// win, on every call.
	stores := []config.StoreConfig{
		{Key: "first", Name: "First", Latitude: 41.3, Longitude: 69.2},
		{Key: "second", Name: "Second", Latitude: 41.3, Longitude: 69.2},
	}
	r, err := NewRegistry(stores)
	if err != nil {
		t.Fatal(err)
	}
	user := Coordinate{Latitude: 41.35, Longitude: 69.25}
	for i := 0; i < 10; i++ {
		key, _, err := r.Nearest(user)
		if err != nil {
			t.Fatal(err)
		}
		if key != "first" {
			t.Fatalf("tie-break not deterministic: got %s on call %d", key, i)
		}
	}
}
