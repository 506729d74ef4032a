package goquery_test

import (
	"testing"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSrcset(t *testing.T) {
	t.Parallel()

	t.Run("parses width descriptors", func(t *testing.T) {
		t.Parallel()

		candidates := goquery.ParseSrcset(
			"https://cdn.example.com/img_400.jpg 400w, https://cdn.example.com/img_1424.jpg 1424w")

		require.Len(t, candidates, 2)
		assert.Equal(t, offprint.ImageCandidate{URL: "https://cdn.example.com/img_400.jpg", Width: 400}, candidates[0])
		assert.Equal(t, offprint.ImageCandidate{URL: "https://cdn.example.com/img_1424.jpg", Width: 1424}, candidates[1])
	})

	t.Run("entry without descriptor gets width zero", func(t *testing.T) {
		t.Parallel()

		candidates := goquery.ParseSrcset("https://cdn.example.com/img.jpg")

		require.Len(t, candidates, 1)
		assert.Zero(t, candidates[0].Width)
	})

	t.Run("density descriptors are ignored", func(t *testing.T) {
		t.Parallel()

		candidates := goquery.ParseSrcset("https://cdn.example.com/img.jpg 2x")

		require.Len(t, candidates, 1)
		assert.Zero(t, candidates[0].Width)
	})

	t.Run("skips empty and unsafe entries", func(t *testing.T) {
		t.Parallel()

		candidates := goquery.ParseSrcset(" , javascript:alert(1) 400w, https://cdn.example.com/ok.jpg 400w")

		require.Len(t, candidates, 1)
		assert.Equal(t, "https://cdn.example.com/ok.jpg", candidates[0].URL)
	})

	t.Run("empty srcset", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.ParseSrcset(""))
	})
}
