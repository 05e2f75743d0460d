package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoCache "github.com/eko/gocache/store/ristretto/v4"
)

// Store is the in-process cache. It only ever holds service bookkeeping
// such as chain probe results, poll reads are never cached.
type Store struct {
	S store.StoreInterface

	client *ristretto.Cache
}

func NewStore() (*Store, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Store{
		S:      ristrettoCache.NewRistretto(client),
		client: client,
	}, nil
}

// Wait blocks until buffered writes are visible to readers.
func (v *Store) Wait() {
	v.client.Wait()
}

func (v *Store) Close() {
	v.client.Close()
}
