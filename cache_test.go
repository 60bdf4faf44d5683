package finly

import (
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	c.Set("price:XYZ", []byte(`{"price":12.5}`))

	got, ok := c.Get("price:XYZ", time.Minute)
	if !ok {
		t.Fatal("Get reported miss for fresh entry")
	}
	if string(got) != `{"price":12.5}` {
		t.Errorf("Get = %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	if _, ok := c.Get("nothing", time.Hour); ok {
		t.Error("Get reported hit for absent key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	c.Set("fx:EURPLN", []byte("4.3"))

	now = now.Add(59 * time.Minute)
	if _, ok := c.Get("fx:EURPLN", time.Hour); !ok {
		t.Error("entry within maxAge reported stale")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("fx:EURPLN", time.Hour); ok {
		t.Error("entry past maxAge reported fresh")
	}
}

func TestMemoryCacheZeroMaxAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	c.Set("k", []byte("v"))
	// Zero maxAge still accepts an entry written at the same instant.
	if _, ok := c.Get("k", 0); !ok {
		t.Error("same-instant entry rejected at maxAge 0")
	}
	now = now.Add(time.Nanosecond)
	if _, ok := c.Get("k", 0); ok {
		t.Error("aged entry accepted at maxAge 0")
	}
}

func TestMemoryCacheOverwriteResetsAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	c.Set("k", []byte("old"))
	now = now.Add(2 * time.Hour)
	c.Set("k", []byte("new"))

	got, ok := c.Get("k", time.Minute)
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, %v, want fresh \"new\"", got, ok)
	}
}

func TestMemoryCacheClearPrefix(t *testing.T) {
	c := NewMemoryCache()
	c.Set("price:A", []byte("1"))
	c.Set("price:B", []byte("2"))
	c.Set("fx:EURPLN", []byte("4.3"))

	c.Clear("price:")

	if _, ok := c.Get("price:A", time.Hour); ok {
		t.Error("price:A survived Clear(\"price:\")")
	}
	if _, ok := c.Get("fx:EURPLN", time.Hour); !ok {
		t.Error("fx:EURPLN dropped by Clear(\"price:\")")
	}

	c.Clear("")
	if _, ok := c.Get("fx:EURPLN", time.Hour); ok {
		t.Error("fx:EURPLN survived Clear(\"\")")
	}
}
