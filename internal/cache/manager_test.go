package cache

import (
	"context"
	"testing"
	"time"

	"gabysite/internal/i18n"
	"gabysite/internal/model"
)

func testManager() *Manager {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	return NewManager(backend, time.Minute, time.Minute)
}

func TestMediaKey(t *testing.T) {
	a := MediaKey("photos", i18n.LocaleES, "sunset", "nature")
	b := MediaKey("photos", i18n.LocaleEN, "sunset", "nature")
	if a == b {
		t.Error("keys for different locales must differ")
	}

	// Query normalization: case and surrounding whitespace do not fragment
	// the cache.
	c := MediaKey("photos", i18n.LocaleES, " SUNSET ", "nature")
	if a != c {
		t.Errorf("normalized keys differ: %q vs %q", a, c)
	}

	// User input cannot inject key structure.
	d := MediaKey("photos", i18n.LocaleES, "x:c=all", "nature")
	e := MediaKey("photos", i18n.LocaleES, "x", "all")
	if d == e {
		t.Error("query escaping failed, keys collided")
	}
}

func TestManagerTypedRoundTrip(t *testing.T) {
	m := testManager()
	defer m.Close()
	ctx := context.Background()

	key := MediaKey("photos", i18n.LocaleES, "", "all")
	photos := []model.LocalizedPhoto{{ID: 1, Title: "Atardecer", CategoryKey: "nature"}}

	if err := m.Photos.Set(ctx, key, &photos); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := m.Photos.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(*got) != 1 || (*got)[0].Title != "Atardecer" {
		t.Errorf("round trip mangled value: %+v", got)
	}
}

func TestManagerInvalidateMedia(t *testing.T) {
	m := testManager()
	defer m.Close()
	ctx := context.Background()

	photoKey := MediaKey("photos", i18n.LocaleES, "", "all")
	photos := []model.LocalizedPhoto{{ID: 1}}
	_ = m.Photos.Set(ctx, photoKey, &photos)

	wall := []model.WallEntry{{ID: "e1", FullName: "Ana"}}
	_ = m.Wall.Set(ctx, WallKey(), &wall)

	m.InvalidateMedia(ctx)

	if _, ok := m.Photos.Get(ctx, photoKey); ok {
		t.Error("media cache survived invalidation")
	}
	if _, ok := m.Wall.Get(ctx, WallKey()); !ok {
		t.Error("wall cache was dropped by media invalidation")
	}
}

func TestManagerGetOrSet(t *testing.T) {
	m := testManager()
	defer m.Close()
	ctx := context.Background()

	calls := 0
	compute := func() (*[]model.LocalizedVideo, error) {
		calls++
		v := []model.LocalizedVideo{{ID: 7, Title: "Clip"}}
		return &v, nil
	}

	key := MediaKey("videos", i18n.LocaleEN, "clip", "all")
	for i := 0; i < 3; i++ {
		got, err := m.Videos.GetOrSet(ctx, key, compute)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if (*got)[0].ID != 7 {
			t.Errorf("value = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1 (memoized)", calls)
	}
}
