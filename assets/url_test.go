package assets_test

import (
	"testing"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/assets"
	"github.com/stretchr/testify/assert"
)

func TestBestCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []offprint.ImageCandidate
		want       string
	}{
		{
			name: "largest width wins",
			candidates: []offprint.ImageCandidate{
				{URL: "small.jpg", Width: 400},
				{URL: "large.jpg", Width: 1424},
				{URL: "medium.jpg", Width: 834},
			},
			want: "large.jpg",
		},
		{
			name: "declared width beats none",
			candidates: []offprint.ImageCandidate{
				{URL: "plain.jpg"},
				{URL: "sized.jpg", Width: 400},
			},
			want: "sized.jpg",
		},
		{
			name: "first wins among equals",
			candidates: []offprint.ImageCandidate{
				{URL: "a.jpg", Width: 400},
				{URL: "b.jpg", Width: 400},
			},
			want: "a.jpg",
		},
		{
			name: "empty list",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, assets.BestCandidate(tt.candidates))
		})
	}
}

func TestHighResURL(t *testing.T) {
	t.Parallel()

	rules := offprint.DefaultRules()

	t.Run("rewrites CDN-served asset to max quality", func(t *testing.T) {
		t.Parallel()

		in := "https://www.economist.com/cdn-cgi/image/width=384,quality=80,format=auto/content-assets/images/20260305_FBD001.jpg"

		assert.Equal(t,
			"https://www.economist.com/cdn-cgi/image/width=1424,quality=80,format=auto/content-assets/images/20260305_FBD001.jpg",
			assets.HighResURL(in, rules))
	})

	t.Run("non-CDN URL passes through", func(t *testing.T) {
		t.Parallel()

		in := "https://cdn.example.com/photos/20260305_FBD001.jpg"
		assert.Equal(t, in, assets.HighResURL(in, rules))
	})

	t.Run("CDN URL without a content asset path passes through", func(t *testing.T) {
		t.Parallel()

		in := "https://www.economist.com/cdn-cgi/image/width=384/other/thing.svg"
		assert.Equal(t, in, assets.HighResURL(in, rules))
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips cache busters and fragments",
			in:   "https://cdn.example.com/img.jpg?width=1424&utm_source=feed&v=3#top",
			want: "https://cdn.example.com/img.jpg?width=1424",
		},
		{
			name: "keeps quality parameters",
			in:   "https://cdn.example.com/img.jpg?format=auto&quality=80&width=1424",
			want: "https://cdn.example.com/img.jpg?format=auto&quality=80&width=1424",
		},
		{
			name: "no query unchanged",
			in:   "https://cdn.example.com/img.jpg",
			want: "https://cdn.example.com/img.jpg",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, assets.NormalizeURL(tt.in))
		})
	}
}
