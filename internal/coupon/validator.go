package coupon

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	minCodeLength = 8
	maxCodeLength = 10
	// a code must appear in this many sets, or in every set when fewer are loaded
	requiredMatches = 2
)

// Validator validates promo codes against multiple promo code sets
type Validator struct {
	couponSets []*couponSet
	sources    []string
	mu         sync.RWMutex
}

// couponSet represents a set of promo codes loaded from a single source
type couponSet struct {
	coupons map[string]bool
	filter  *bloom.BloomFilter
	mu      sync.RWMutex
}

func newCouponSet(coupons map[string]bool) *couponSet {
	filter := bloom.NewWithEstimates(uint(max(len(coupons), 1)), 0.01)
	for code := range coupons {
		filter.AddString(code)
	}
	return &couponSet{coupons: coupons, filter: filter}
}

func (cs *couponSet) contains(code string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.filter.TestString(code) {
		return false
	}
	return cs.coupons[code]
}

// fileLoadResult holds the result of loading a single source
type fileLoadResult struct {
	index   int
	coupons map[string]bool
	err     error
}

// NewValidator creates a new promo code validator
func NewValidator() *Validator {
	return &Validator{
		couponSets: make([]*couponSet, 0),
	}
}

// LoadFromSources loads promo sets concurrently. Each source is either an
// http(s) URL or a local path; gzip content is detected automatically.
// Returns error if any source fails to load.
func (v *Validator) LoadFromSources(ctx context.Context, sources []string) error {
	return v.load(ctx, sources, func(ctx context.Context, src string) (map[string]bool, error) {
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return v.loadFromURL(ctx, src)
		}
		return loadFromFile(src)
	})
}

// LoadFromURLs loads promo data from multiple URLs concurrently
func (v *Validator) LoadFromURLs(ctx context.Context, urls []string) error {
	return v.load(ctx, urls, v.loadFromURL)
}

// LoadFromFiles loads promo data from multiple local files concurrently
func (v *Validator) LoadFromFiles(ctx context.Context, paths []string) error {
	return v.load(ctx, paths, func(_ context.Context, path string) (map[string]bool, error) {
		return loadFromFile(path)
	})
}

func (v *Validator) load(ctx context.Context, sources []string, fetch func(context.Context, string) (map[string]bool, error)) error {
	if len(sources) == 0 {
		return fmt.Errorf("no promo sources provided")
	}

	resultChan := make(chan fileLoadResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			coupons, err := fetch(ctx, source)
			resultChan <- fileLoadResult{
				index:   index,
				coupons: coupons,
				err:     err,
			}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]fileLoadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return fmt.Errorf("failed to load promo source %d: %w", i+1, result.err)
		}
	}

	sets := make([]*couponSet, len(results))
	for i, result := range results {
		sets[i] = newCouponSet(result.coupons)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.couponSets = sets
	v.sources = append([]string(nil), sources...)

	return nil
}

// loadFromURL downloads and parses a promo file from a URL
func (v *Validator) loadFromURL(ctx context.Context, url string) (map[string]bool, error) {
	client := &http.Client{
		Timeout: 5 * time.Minute,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseMaybeGzip(resp.Body)
}

func loadFromFile(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parseMaybeGzip(f)
}

// parseMaybeGzip sniffs the gzip magic bytes and decompresses when present
func parseMaybeGzip(r io.Reader) (map[string]bool, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		gzReader, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		return parseCoupons(gzReader)
	}
	return parseCoupons(br)
}

// parseCoupons reads one code per line and returns them as a set
func parseCoupons(r io.Reader) (map[string]bool, error) {
	coupons := make(map[string]bool)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if code := normalize(scanner.Text()); code != "" {
			coupons[code] = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return coupons, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValid checks if a promo code is valid.
// A code is valid if:
// 1. It has 8-10 characters after trimming
// 2. It appears in at least 2 of the loaded sets (or all of them when fewer are loaded)
func (v *Validator) IsValid(ctx context.Context, code string) bool {
	code = normalize(code)
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		return false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.couponSets) == 0 {
		return false
	}
	need := min(requiredMatches, len(v.couponSets))

	foundChan := make(chan bool, len(v.couponSets))

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, cs := range v.couponSets {
		wg.Add(1)
		go func(set *couponSet) {
			defer wg.Done()

			select {
			case <-searchCtx.Done():
				return
			default:
			}

			if set.contains(code) {
				select {
				case foundChan <- true:
				case <-searchCtx.Done():
				}
			}
		}(cs)
	}

	go func() {
		wg.Wait()
		close(foundChan)
	}()

	count := 0
	for range foundChan {
		count++
		if count >= need {
			cancel()
			break
		}
	}

	return count >= need
}

// GetStats returns statistics about loaded promo sets
func (v *Validator) GetStats() map[string]interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["total_files"] = len(v.couponSets)

	fileSizes := make([]int, len(v.couponSets))
	totalCoupons := 0

	for i, cs := range v.couponSets {
		cs.mu.RLock()
		size := len(cs.coupons)
		cs.mu.RUnlock()

		fileSizes[i] = size
		totalCoupons += size
	}

	stats["file_sizes"] = fileSizes
	stats["file_paths"] = append([]string{}, v.sources...)
	stats["total_coupons"] = totalCoupons

	return stats
}
