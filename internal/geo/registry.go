package geo

import (
	"fmt"

	"github.com/uzretail/storebot/config"
)

// Store is one registered shop location.
type Store struct {
	Key      string     `json:"key"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Location Coordinate `json:"location"`
}

// Registry is the fixed, ordered set of stores loaded once at startup.
// It is never mutated after construction; iteration order is the declaration
// order of the configuration, which decides nearest-store tie-breaks.
type Registry struct {
	stores []Store
	byKey  map[string]int
}

// NewRegistry builds a registry from configuration. An empty or duplicated
// store list is a configuration error and fatal at startup.
func NewRegistry(stores []config.StoreConfig) (*Registry, error) {
	if len(stores) == 0 {
		return nil, fmt.Errorf("store registry is empty")
	}
	r := &Registry{
		stores: make([]Store, 0, len(stores)),
		byKey:  make(map[string]int, len(stores)),
	}
	for _, s := range stores {
		if _, dup := r.byKey[s.Key]; dup {
			return nil, fmt.Errorf("duplicate store key %q", s.Key)
		}
		r.byKey[s.Key] = len(r.stores)
		r.stores = append(r.stores, Store{
			Key:      s.Key,
			Name:     s.Name,
			Address:  s.Address,
			Location: Coordinate{Latitude: s.Latitude, Longitude: s.Longitude},
		})
	}
	return r, nil
}

// Stores returns the stores in registry order.
func (r *Registry) Stores() []Store {
	return r.stores
}

// Get looks up a store by key.
func (r *Registry) Get(key string) (Store, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Store{}, false
	}
	return r.stores[i], true
}

func (r *Registry) Len() int {
	return len(r.stores)
}

// Nearest returns the key of the store closest to user, plus the full
// per-store distance map. The comparison is strictly-less-than against the
// running minimum, so the first store in registry order wins ties.
func (r *Registry) Nearest(user Coordinate) (string, map[string]DistanceReport, error) {
	if len(r.stores) == 0 {
		return "", nil, fmt.Errorf("store registry is empty")
	}

	distances := make(map[string]DistanceReport, len(r.stores))
	nearest := ""
	minKm := 0.0
	for i, s := range r.stores {
		d := Distance(user, s.Location)
		distances[s.Key] = d
		if i == 0 || d.Km < minKm {
			minKm = d.Km
			nearest = s.Key
		}
	}
	return nearest, distances, nil
}
