package python

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultParseCacheSize bounds the number of files a ParseCache remembers.
const DefaultParseCacheSize = 4096

type cachedParse struct {
	digest  [sha256.Size]byte
	imports []Import
	err     error
}

// ParseCache memoizes ParsePythonImports by file path and content digest.
// It is safe for concurrent use.
type ParseCache struct {
	entries *lru.Cache[string, cachedParse]
}

// NewParseCache creates a cache holding at most size files.
func NewParseCache(size int) (*ParseCache, error) {
	if size <= 0 {
		size = DefaultParseCacheSize
	}
	entries, err := lru.New[string, cachedParse](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &ParseCache{entries: entries}, nil
}

// Parse returns the imports of sourceCode, reusing the previous result for filePath
// when its content is unchanged. Parse failures are cached as well.
func (c *ParseCache) Parse(filePath string, sourceCode []byte) ([]Import, error) {
	digest := sha256.Sum256(sourceCode)
	if entry, ok := c.entries.Get(filePath); ok && entry.digest == digest {
		return entry.imports, entry.err
	}

	imports, err := ParsePythonImports(sourceCode)
	c.entries.Add(filePath, cachedParse{digest: digest, imports: imports, err: err})
	return imports, err
}

// Len returns the number of cached files.
func (c *ParseCache) Len() int {
	return c.entries.Len()
}
