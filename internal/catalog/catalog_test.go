package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gaayatricouture/couture/internal/model"
)

func products(cats ...string) []model.Product {
	out := make([]model.Product, len(cats))
	for i, c := range cats {
		out[i] = model.Product{ID: string(rune('a' + i)), Title: c + " item", Category: c}
	}
	return out
}

func ids(items []model.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	items := products("Bridal", "Saree", "Bridal", "Kids", "")

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"all is identity", All, []string{"a", "b", "c", "d", "e"}},
		{"empty is identity", "", []string{"a", "b", "c", "d", "e"}},
		{"exact match keeps order", "Bridal", []string{"a", "c"}},
		{"case sensitive", "bridal", []string{}},
		{"unknown category", "Menswear", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(Filter(items, tt.category))); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got := Categories(products("Saree", "Bridal", "Saree", "", "Kids"))
	want := []string{All, "Saree", "Bridal", "Kids"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	items := products("Saree", "Bridal")
	if p, ok := Find(items, "b"); !ok || p.Category != "Bridal" {
		t.Errorf("Find(b) = %+v, %v", p, ok)
	}
	if _, ok := Find(items, "zz"); ok {
		t.Error("expected missing id not to be found")
	}
}

func TestCarouselNextPrevIdentity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for start := 0; start < n; start++ {
			c := NewCarousel(n, start)
			c.Next()
			c.Prev()
			if c.Index() != start {
				t.Errorf("n=%d start=%d: next then prev gave %d", n, start, c.Index())
			}
		}
	}
}

func TestCarouselFullCycle(t *testing.T) {
	for n := 1; n <= 6; n++ {
		c := NewCarousel(n, 2)
		start := c.Index()
		for i := 0; i < n; i++ {
			c.Next()
		}
		if c.Index() != start {
			t.Errorf("n=%d: %d nexts gave %d, want %d", n, n, c.Index(), start)
		}
	}
}

func TestCarouselWrap(t *testing.T) {
	c := NewCarousel(3, 0)
	c.Prev()
	if c.Index() != 2 {
		t.Errorf("prev from 0 = %d, want 2", c.Index())
	}
	if c.NextIndex() != 0 || c.PrevIndex() != 1 {
		t.Errorf("NextIndex/PrevIndex = %d/%d, want 0/1", c.NextIndex(), c.PrevIndex())
	}
	if c.Index() != 2 {
		t.Error("NextIndex and PrevIndex must not move the carousel")
	}

	c.Select(-4)
	if c.Index() != 2 {
		t.Errorf("Select(-4) = %d, want 2", c.Index())
	}

	empty := NewCarousel(0, 5)
	empty.Next()
	if empty.Index() != 0 || empty.Len() != 0 {
		t.Error("empty carousel should stay at 0")
	}
}

func TestLightbox(t *testing.T) {
	var lb Lightbox[model.Product]
	if lb.IsOpen() {
		t.Fatal("new lightbox should be closed")
	}

	p := model.Product{ID: "x", Title: "Saree"}
	lb.Open(p)
	got, ok := lb.Selected()
	if !ok || got.ID != "x" {
		t.Errorf("Selected() = %+v, %v", got, ok)
	}

	lb.Close()
	if _, ok := lb.Selected(); ok || lb.IsOpen() {
		t.Error("expected closed lightbox")
	}
}
