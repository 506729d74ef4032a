package offprint

import "context"

// ResolutionClass distinguishes the edition's front-cover art from genuine
// article images.
type ResolutionClass string

// Resolution classes for ImageAsset.Class.
const (
	ClassCover   ResolutionClass = "cover"
	ClassArticle ResolutionClass = "article"
)

// ImageAsset is one deduplicated, fetched image. Multiple ImageRefs across
// multiple articles may resolve to the same asset; the registry owning the
// asset guarantees no two assets share a fingerprint.
type ImageAsset struct {
	// CanonicalURL is the normalized best-quality URL the bytes came from.
	CanonicalURL string

	// Fingerprint is the hex SHA-256 of Data.
	Fingerprint string

	Class ResolutionClass
	Data  []byte

	// RefCount is the number of references resolved to this asset.
	RefCount int
}

// ImageResolver resolves an image reference to the single best-quality,
// deduplicated asset for the edition.
//
// Resolve returns (nil, nil) when the reference is classified as cover art
// or matches a tracking-pixel pattern: such references are dropped from
// article bodies rather than turned into assets. Fetch and decode problems
// return an *ImageFailure; they are non-fatal and the caller keeps the
// surrounding block with the image omitted.
type ImageResolver interface {
	Resolve(ctx context.Context, ref *ImageRef) (*ImageAsset, error)

	// ResolveCover seeds the edition cover from an explicit URL (the one
	// shown on the edition index page). Later cover-classified references
	// are ignored once a cover exists.
	ResolveCover(ctx context.Context, url string) error

	// Cover returns the edition-level cover asset, if one was seen.
	// At most one cover exists per edition, sourced from the first
	// cover-classified reference.
	Cover() *ImageAsset

	// Assets returns all registered article assets in first-seen order.
	Assets() []*ImageAsset
}

// Image failure causes.
const (
	ImageFetchError  = "fetch_error"
	ImageDecodeError = "decode_error"
)

// ImageFailure records a non-fatal image loss for the final report.
type ImageFailure struct {
	URL   string
	Cause string // ImageFetchError or ImageDecodeError
	Err   error
}

// Error implements the error interface.
func (f *ImageFailure) Error() string {
	if f.Err != nil {
		return "image " + f.Cause + " for " + f.URL + ": " + f.Err.Error()
	}
	return "image " + f.Cause + " for " + f.URL
}

// Unwrap returns the underlying cause.
func (f *ImageFailure) Unwrap() error { return f.Err }
