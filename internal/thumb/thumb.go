// Package thumb downloads artwork thumbnails and renders them as half-block
// terminal cells.
package thumb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration

	"golang.org/x/image/draw"
	"golang.org/x/sync/semaphore"

	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

const (
	// DefaultParallel bounds concurrent downloads.
	DefaultParallel = 6

	// MaxBytes caps a thumbnail download.
	MaxBytes = 4 << 20

	// StoreSize is the longest edge kept in the cache after decoding.
	StoreSize = 96
)

// Fetcher downloads thumbnails into a cache.
type Fetcher struct {
	client *museum.Client
	cache  imagecache.Cache
	sem    *semaphore.Weighted
}

// NewFetcher returns a fetcher running at most parallel downloads at once.
func NewFetcher(client *museum.Client, cache imagecache.Cache, parallel int) *Fetcher {
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	return &Fetcher{
		client: client,
		cache:  cache,
		sem:    semaphore.NewWeighted(int64(parallel)),
	}
}

// Cache returns the cache the fetcher writes to.
func (f *Fetcher) Cache() imagecache.Cache {
	return f.cache
}

// Load fetches and decodes ref, records the result in the cache and returns
// it. A cancelled load is recorded as Unknown so it can be claimed again.
func (f *Fetcher) Load(ctx context.Context, ref string) imagecache.Entry {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		f.cache.Set(ref, imagecache.Entry{Status: imagecache.Unknown})
		return imagecache.Entry{Status: imagecache.Unknown, Err: err}
	}
	defer f.sem.Release(1)

	data, err := f.client.Fetch(ctx, ref, MaxBytes)
	if err != nil {
		if ctx.Err() != nil {
			f.cache.Set(ref, imagecache.Entry{Status: imagecache.Unknown})
			return imagecache.Entry{Status: imagecache.Unknown, Err: err}
		}
		e := imagecache.Entry{Status: imagecache.Failed, Err: err}
		f.cache.Set(ref, e)
		return e
	}

	img, err := Decode(data)
	if err != nil {
		e := imagecache.Entry{Status: imagecache.Failed, Err: err}
		f.cache.Set(ref, e)
		return e
	}
	e := imagecache.Entry{Status: imagecache.Loaded, Image: img}
	f.cache.Set(ref, e)
	return e
}

// Decode reads a JPEG or PNG and shrinks it so its longest edge is at most
// StoreSize.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding thumbnail: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= StoreSize && b.Dy() <= StoreSize {
		return img, nil
	}
	w, h := fit(b.Dx(), b.Dy(), StoreSize, StoreSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// fit scales w×h to fit inside maxW×maxH, keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return max(maxW, 1), max(maxH, 1)
	}
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}
