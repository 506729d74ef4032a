package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/mlapinski/offprint"
)

// Registry is the single owner of fetched image bytes for one edition.
// It enforces the deduplication invariant: no two registered assets share
// a content fingerprint. The pipeline is sequential, but the mutex keeps
// the lookup-and-insert atomic for any future parallel fetcher.
type Registry struct {
	mu      sync.Mutex
	byPrint map[string]*offprint.ImageAsset
	byURL   map[uint64]*offprint.ImageAsset
	failed  map[uint64]*offprint.ImageFailure
	order   []string
	cover   *offprint.ImageAsset
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byPrint: make(map[string]*offprint.ImageAsset),
		byURL:   make(map[uint64]*offprint.ImageAsset),
		failed:  make(map[uint64]*offprint.ImageFailure),
	}
}

// Fingerprint computes the content fingerprint for image bytes.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// urlKey is the request-cache key over a canonical URL.
func urlKey(canonical string) uint64 {
	return xxhash.Sum64String(canonical)
}

// Lookup returns the asset previously resolved for the canonical URL, or
// the failure recorded for it, without fetching anything.
func (r *Registry) Lookup(canonical string) (*offprint.ImageAsset, *offprint.ImageFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := urlKey(canonical)
	return r.byURL[key], r.failed[key]
}

// Ref is Lookup plus a reference-count increment on a hit, done under the
// registry lock so the count stays consistent for any future parallel
// fetcher.
func (r *Registry) Ref(canonical string) (*offprint.ImageAsset, *offprint.ImageFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := urlKey(canonical)
	if asset := r.byURL[key]; asset != nil {
		asset.RefCount++
		return asset, nil
	}
	return nil, r.failed[key]
}

// Register stores fetched bytes under their fingerprint and canonical URL.
// When an asset with the same fingerprint already exists, the existing
// asset is returned with its reference count incremented and the new bytes
// are discarded: same physical image, different URL.
func (r *Registry) Register(canonical string, data []byte) *offprint.ImageAsset {
	r.mu.Lock()
	defer r.mu.Unlock()

	fp := Fingerprint(data)
	if existing, ok := r.byPrint[fp]; ok {
		existing.RefCount++
		r.byURL[urlKey(canonical)] = existing
		return existing
	}

	asset := &offprint.ImageAsset{
		CanonicalURL: canonical,
		Fingerprint:  fp,
		Class:        offprint.ClassArticle,
		Data:         data,
		RefCount:     1,
	}
	r.byPrint[fp] = asset
	r.byURL[urlKey(canonical)] = asset
	r.order = append(r.order, fp)
	return asset
}

// RecordFailure remembers a fetch failure so the same canonical URL is not
// re-requested within the edition.
func (r *Registry) RecordFailure(canonical string, failure *offprint.ImageFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[urlKey(canonical)] = failure
}

// SetCover stores the edition cover asset. Only the first cover sticks.
func (r *Registry) SetCover(asset *offprint.ImageAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cover == nil {
		asset.Class = offprint.ClassCover
		r.cover = asset
	}
}

// Cover returns the edition cover asset, if any.
func (r *Registry) Cover() *offprint.ImageAsset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cover
}

// Assets returns all article assets in first-seen order.
func (r *Registry) Assets() []*offprint.ImageAsset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*offprint.ImageAsset, 0, len(r.order))
	for _, fp := range r.order {
		out = append(out, r.byPrint[fp])
	}
	return out
}

// Len returns the number of distinct article assets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
