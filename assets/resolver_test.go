package assets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/assets"
	"github.com/mlapinski/offprint/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Resolver implements offprint.ImageResolver at compile time.
var _ offprint.ImageResolver = (*assets.Resolver)(nil)

func ref(urls ...string) *offprint.ImageRef {
	r := &offprint.ImageRef{}
	for i, u := range urls {
		r.Candidates = append(r.Candidates, offprint.ImageCandidate{URL: u, Width: (i + 1) * 400})
	}
	return r
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("fetches the best candidate once per canonical URL", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, url string) ([]byte, error) {
				fetched = append(fetched, url)
				return pngBytes(1), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		first := ref("https://cdn.example.com/img_400.jpg", "https://cdn.example.com/img_1424.jpg")
		asset, err := r.Resolve(context.Background(), first)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, asset.Fingerprint, first.Fingerprint)

		// Same reference again: served from the request cache.
		second := ref("https://cdn.example.com/img_400.jpg", "https://cdn.example.com/img_1424.jpg")
		again, err := r.Resolve(context.Background(), second)
		require.NoError(t, err)
		assert.Same(t, asset, again)
		assert.Equal(t, 2, asset.RefCount)

		require.Len(t, fetched, 1)
		assert.Equal(t, "https://cdn.example.com/img_1424.jpg", fetched[0])
	})

	t.Run("identical bytes under different URLs deduplicate", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				return pngBytes(7), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		a, err := r.Resolve(context.Background(), ref("https://cdn.example.com/a.jpg"))
		require.NoError(t, err)
		b, err := r.Resolve(context.Background(), ref("https://cdn.example.com/b.jpg"))
		require.NoError(t, err)

		assert.Same(t, a, b)
		assert.Equal(t, 2, a.RefCount)
		assert.Len(t, r.Assets(), 1)
	})

	t.Run("tracking pixel is dropped silently", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, url string) ([]byte, error) {
				t.Fatalf("unexpected fetch of %s", url)
				return nil, nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		asset, err := r.Resolve(context.Background(), ref("https://cdn.example.com/pixel.gif"))
		assert.Nil(t, asset)
		assert.NoError(t, err)
	})

	t.Run("cover-classified reference is dropped from the body", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				return pngBytes(9), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		asset, err := r.Resolve(context.Background(), ref("https://cdn.example.com/content-assets/20260305_DE_US.jpg"))
		assert.Nil(t, asset)
		assert.NoError(t, err)

		// The bytes landed as the edition cover rather than a body asset.
		require.NotNil(t, r.Cover())
		assert.Equal(t, offprint.ClassCover, r.Cover().Class)
		assert.Empty(t, r.Assets())
	})

	t.Run("failed cover is not re-requested by later references", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				calls++
				return nil, errors.New("HTTP 403")
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		// The cover appears on essentially every article page; a failed
		// fetch must be replayed from the cache, not repeated per article.
		cover := "https://cdn.example.com/content-assets/20260305_DE_US.jpg"
		for i := 0; i < 3; i++ {
			asset, err := r.Resolve(context.Background(), ref(cover))
			assert.Nil(t, asset)
			assert.NoError(t, err)
		}
		assert.Equal(t, 1, calls)
		assert.Nil(t, r.Cover())
	})

	t.Run("fetch failure is recorded and not retried", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				calls++
				return nil, errors.New("connection reset")
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		_, err := r.Resolve(context.Background(), ref("https://cdn.example.com/broken.jpg"))
		var failure *offprint.ImageFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, offprint.ImageFetchError, failure.Cause)

		_, err = r.Resolve(context.Background(), ref("https://cdn.example.com/broken.jpg"))
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, 1, calls)
	})

	t.Run("non-image payload is a decode failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				return []byte("<html>not an image</html>"), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		_, err := r.Resolve(context.Background(), ref("https://cdn.example.com/actually-a-page.jpg"))
		var failure *offprint.ImageFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, offprint.ImageDecodeError, failure.Cause)
	})

	t.Run("relative URL resolves against the base", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, url string) ([]byte, error) {
				fetched = url
				return pngBytes(3), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		_, err := r.Resolve(context.Background(), ref("/media/photo.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "https://www.economist.com/media/photo.jpg", fetched)
	})
}

func TestResolver_ResolveCover(t *testing.T) {
	t.Parallel()

	t.Run("first cover wins", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				return pngBytes(4), nil
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		require.NoError(t, r.ResolveCover(context.Background(), "https://cdn.example.com/20260305_DE_US.jpg"))
		first := r.Cover()
		require.NotNil(t, first)

		require.NoError(t, r.ResolveCover(context.Background(), "https://cdn.example.com/20260305_DE_UK.jpg"))
		assert.Same(t, first, r.Cover())
	})

	t.Run("failed cover fetch leaves the edition coverless", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, errors.New("HTTP 403")
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		err := r.ResolveCover(context.Background(), "https://cdn.example.com/20260305_DE_US.jpg")
		require.Error(t, err)
		assert.Nil(t, r.Cover())
	})

	t.Run("repeated seeding of a failed cover replays the failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.ByteFetcher{
			FetchBytesFn: func(_ context.Context, _ string) ([]byte, error) {
				calls++
				return nil, errors.New("HTTP 403")
			},
		}
		r := assets.NewResolver(offprint.DefaultRules(), fetcher)

		url := "https://cdn.example.com/20260305_DE_US.jpg"
		first := r.ResolveCover(context.Background(), url)
		require.Error(t, first)

		second := r.ResolveCover(context.Background(), url)
		require.Error(t, second)
		var failure *offprint.ImageFailure
		require.ErrorAs(t, second, &failure)
		assert.Equal(t, offprint.ImageFetchError, failure.Cause)
		assert.Equal(t, 1, calls)
	})
}
