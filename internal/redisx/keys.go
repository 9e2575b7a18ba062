package redisx

import (
	"fmt"
	"time"
)

const (
	// Cached product record: product:{product_id} -> JSON
	keyProduct = "product:%s"
)

// TTLProduct bounds staleness of the product read cache.
var TTLProduct = 5 * time.Minute

func ProductKey(id string) string {
	return fmt.Sprintf(keyProduct, id)
}
