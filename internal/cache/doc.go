// Package cache provides the bounded LRU cache used for rasterized text runs
// and tinted glyph images.
//
//	runs := cache.New[runKey, *text.Bitmap](256)
//	bmp, err := runs.GetOrCreate(key, rasterize)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
