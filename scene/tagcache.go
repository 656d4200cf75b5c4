package scene

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/sceneproto/scene/value"
)

// TagNames caches the 4-character display string for a Tag: the
// daemon's patch-error log lines render tags by name far more often
// than they mint new ones, so memoizing the conversion
// avoids rebuilding the same four-byte string on every log line in a
// busy session.
type TagNames struct {
	cache *lru.Cache
}

// NewTagNames builds a tag-name cache holding up to size entries.
func NewTagNames(size int) *TagNames {
	cache, err := lru.New(size)
	if err != nil {
		// lru.New only fails for size <= 0.
		panic(err)
	}
	return &TagNames{cache: cache}
}

// Name returns t's four-character display string, populating the cache
// on a miss.
func (tn *TagNames) Name(t value.Tag) string {
	if v, ok := tn.cache.Get(t); ok {
		return v.(string)
	}
	s := t.String()
	tn.cache.Add(t, s)
	return s
}
