package bot

import (
	"testing"

	"github.com/panjf2000/ants/v2"
)

func TestShutdownReleasesPool(t *testing.T) {
	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatal(err)
	}
	b := &Bot{pool: pool}

	b.shutdown()
	if !pool.IsClosed() {
		t.Error("expected broadcast pool to be released")
	}

	// repeated shutdown must be harmless
	b.shutdown()
}
