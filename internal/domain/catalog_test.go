package domain

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	costs := map[ItemCategory][]int{
		CategoryFarm:      {200, 500, 150, 300},
		CategoryFishing:   {250, 600, 180, 350},
		CategoryCharacter: {400, 450, 800},
	}
	for cat, want := range costs {
		items := c.ByCategory(cat)
		if len(items) != len(want) {
			t.Fatalf("%s: %d items, want %d", cat, len(items), len(want))
		}
		for i, item := range items {
			if item.Cost != want[i] {
				t.Errorf("%s[%d] cost = %d, want %d", cat, i, item.Cost, want[i])
			}
		}
	}

	seen := map[string]bool{}
	for _, item := range c {
		if seen[item.ID] {
			t.Errorf("duplicate item ID %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestCatalog_Find(t *testing.T) {
	c := DefaultCatalog()
	item, err := c.Find("golden-seeds")
	if err != nil {
		t.Fatal(err)
	}
	if item.Cost != 200 {
		t.Errorf("Cost = %d, want 200", item.Cost)
	}
	if _, err := c.Find("nope"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Find(nope) error = %v", err)
	}
}
