package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru"
	"github.com/klauspost/compress/gzip"
)

// DefaultCacheSize is the number of decoded reports a DirSource keeps around.
const DefaultCacheSize = 256

// DirSource reads reports from a directory where each report is stored as
// <index>.json or, gzipped, <index>.json.gz.
//
// Decoded reports are kept in an LRU cache, so studying overlapping index
// ranges does not decode the same file twice.
type DirSource struct {
	dir   string
	cache *lru.Cache
}

// NewDirSource returns a DirSource over dir. A cacheSize <= 0 selects DefaultCacheSize.
func NewDirSource(dir string, cacheSize int) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat report directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	return &DirSource{dir: dir, cache: cache}, nil
}

// ReportAt implements Source.
func (d *DirSource) ReportAt(ctx context.Context, index uint64) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := d.cache.Get(index); ok {
		return cached.(*Report), nil
	}

	rep, err := d.load(index)
	if err != nil {
		return nil, fmt.Errorf("index %d: %w", index, err)
	}

	d.cache.Add(index, rep)
	return rep, nil
}

// load opens and decodes the report file for index, preferring the plain file.
func (d *DirSource) load(index uint64) (*Report, error) {
	base := filepath.Join(d.dir, strconv.FormatUint(index, 10)+".json")

	for _, path := range []string{base, base + ".gz"} {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		rep, err := decodeFile(f, filepath.Ext(path) == ".gz")
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrCorrupt, err)
		}
		return rep, nil
	}

	return nil, ErrNotFound
}

func decodeFile(f *os.File, gzipped bool) (*Report, error) {
	var in io.Reader = f

	// gzipped file?
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer func() { _ = gz.Close() }()
		in = gz
	}

	return Decode(in)
}

// Decode reads a single JSON encoded report from r.
func Decode(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
