package catalog

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixtureProducts() []Product {
	return []Product{
		{
			ID:    "iphone-13",
			Title: "iPhone 13",
			ColorOptions: []ColorOption{
				{ID: "Sierra Blue", ColorValue: "#9BB5CE"},
				{ID: "Midnight", ColorValue: "#1C1C1E"},
			},
			StorageOptions: []StorageOption{
				{ID: "s128", SizeValue: 128, Price: 749},
				{ID: "s256", SizeValue: 256, Price: 849},
			},
		},
		{
			ID:    "iphone-13-mini",
			Title: "iPhone 13 mini",
			ColorOptions: []ColorOption{
				{ID: "Starlight", ColorValue: "#FAF6F2"},
			},
			StorageOptions: []StorageOption{
				{ID: "s128", SizeValue: 128, Price: 679},
			},
		},
		{
			ID:    "pixel-9",
			Title: "Pixel 9",
			ColorOptions: []ColorOption{
				{ID: "Obsidian", ColorValue: "#1B1B1B"},
			},
			StorageOptions: []StorageOption{
				{ID: "s1tb", SizeValue: 1, Price: 1099},
			},
		},
	}
}

func TestProduct_ColorAndStorageLookup(t *testing.T) {
	product := fixtureProducts()[0]

	color, ok := product.Color("Midnight")
	if !ok || color.ColorValue != "#1C1C1E" {
		t.Fatalf("unexpected color lookup: %#v ok=%v", color, ok)
	}
	if _, ok := product.Color("Obsidian"); ok {
		t.Fatal("expected lookup miss for another product's color")
	}

	storage, ok := product.Storage("s256")
	if !ok || storage.SizeValue != 256 {
		t.Fatalf("unexpected storage lookup: %#v ok=%v", storage, ok)
	}
	if _, ok := product.Storage("s512"); ok {
		t.Fatal("expected lookup miss for unknown storage id")
	}
}

func TestFind(t *testing.T) {
	products := fixtureProducts()

	product, ok := Find(products, "pixel-9")
	if !ok || product.Title != "Pixel 9" {
		t.Fatalf("unexpected find result: %#v ok=%v", product, ok)
	}
	if _, ok := Find(products, "galaxy-s24"); ok {
		t.Fatal("expected miss for unknown id")
	}
	if _, ok := Find(nil, "pixel-9"); ok {
		t.Fatal("expected miss on empty catalog")
	}
}

func TestStaticProvider_EmptyQueryReturnsAll(t *testing.T) {
	provider := NewStaticProvider(fixtureProducts())

	result, err := provider.FetchProducts(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %#v", result)
	}
	if diff := cmp.Diff(fixtureProducts(), result.Data); diff != "" {
		t.Fatalf("unexpected products (-want +got):\n%s", diff)
	}
}

func TestStaticProvider_PrefixMatchesRankFirst(t *testing.T) {
	provider := NewStaticProvider(fixtureProducts())

	result, err := provider.FetchProducts(context.Background(), "iphone 13", 1, 20)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}

	got := make([]string, 0, len(result.Data))
	for _, p := range result.Data {
		got = append(got, p.ID)
	}
	want := []string{"iphone-13", "iphone-13-mini"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected ranking (-want +got):\n%s", diff)
	}
}

func TestStaticProvider_Windowing(t *testing.T) {
	provider := NewStaticProvider(fixtureProducts())

	result, err := provider.FetchProducts(context.Background(), "", 2, 2)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].ID != "pixel-9" {
		t.Fatalf("unexpected second page: %#v", result.Data)
	}

	result, err = provider.FetchProducts(context.Background(), "", 9, 2)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if result.Data == nil || len(result.Data) != 0 {
		t.Fatalf("expected empty page past the end, got %#v", result.Data)
	}
}

func TestStaticProvider_CopiesInput(t *testing.T) {
	source := fixtureProducts()
	provider := NewStaticProvider(source)
	source[0].Title = "mutated"

	result, err := provider.FetchProducts(context.Background(), "pixel", 1, 20)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("unexpected results: %#v", result.Data)
	}

	all, _ := provider.FetchProducts(context.Background(), "", 1, 20)
	if all.Data[0].Title != "iPhone 13" {
		t.Fatalf("provider leaked caller mutation: %q", all.Data[0].Title)
	}
}
