package coupon

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePromoFiles creates three promo sets in a temp dir and returns their paths
func writePromoFiles(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()
	contents := []string{
		"PIZZAPARTY\nFREESHIP1\nWELCOME10\nLUNCHDEAL\n",
		"PIZZAPARTY\nFREESHIP1\nSUSHI2024\nDESSERTS8\n",
		"PIZZAPARTY\nSUSHI2024\nCURRYNITE\nONLYHERE1\n",
	}

	paths := make([]string, len(contents))
	for i, c := range contents {
		paths[i] = filepath.Join(dir, "promo"+string(rune('1'+i))+".txt")
		require.NoError(t, os.WriteFile(paths[i], []byte(c), 0o644))
	}
	return paths
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestValidator_LoadFromFiles(t *testing.T) {
	t.Run("successful load from multiple files", func(t *testing.T) {
		v := NewValidator()
		require.NoError(t, v.LoadFromFiles(context.Background(), writePromoFiles(t)))

		stats := v.GetStats()
		assert.Equal(t, 3, stats["total_files"])
		assert.Equal(t, 12, stats["total_coupons"])
	})

	t.Run("empty file paths", func(t *testing.T) {
		assert.Error(t, NewValidator().LoadFromFiles(context.Background(), []string{}))
	})

	t.Run("non-existent file", func(t *testing.T) {
		assert.Error(t, NewValidator().LoadFromFiles(context.Background(), []string{"/non/existent/promo.txt"}))
	})
}

func TestValidator_IsValid(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.LoadFromFiles(context.Background(), writePromoFiles(t)))

	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"appears in all 3 sets", "PIZZAPARTY", true},
		{"appears in sets 1 and 2", "FREESHIP1", true},
		{"appears in sets 2 and 3", "SUSHI2024", true},
		{"appears in only 1 set", "WELCOME10", false},
		{"appears in only set 3", "ONLYHERE1", false},
		{"does not exist", "NOTEXIST", false},
		{"too short", "SHORT", false},
		{"too long", "TOOLONGCODE1", false},
		{"lowercase is normalized", "pizzaparty", true},
		{"whitespace is trimmed", "  FREESHIP1  ", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsValid(context.Background(), tt.code))
		})
	}
}

func TestValidator_SingleSetRequiresOneMatch(t *testing.T) {
	paths := writePromoFiles(t)

	v := NewValidator()
	require.NoError(t, v.LoadFromFiles(context.Background(), paths[:1]))

	assert.True(t, v.IsValid(context.Background(), "WELCOME10"))
	assert.False(t, v.IsValid(context.Background(), "SUSHI2024"))
}

func TestValidator_NothingLoaded(t *testing.T) {
	assert.False(t, NewValidator().IsValid(context.Background(), "PIZZAPARTY"))
}

func TestValidator_LoadFromSources_GzipAndURL(t *testing.T) {
	dir := t.TempDir()
	gz := filepath.Join(dir, "promo.gz")
	writeGzip(t, gz, "LUNCHDEAL\nCURRYNITE\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("lunchdeal\nBRUNCH2024\n"))
	}))
	defer srv.Close()

	v := NewValidator()
	require.NoError(t, v.LoadFromSources(context.Background(), []string{gz, srv.URL}))

	assert.True(t, v.IsValid(context.Background(), "LUNCHDEAL"))
	assert.False(t, v.IsValid(context.Background(), "CURRYNITE"))

	paths, ok := v.GetStats()["file_paths"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{gz, srv.URL}, paths)
}

func TestValidator_LoadFromURLs_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewValidator().LoadFromURLs(context.Background(), []string{srv.URL})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}

func TestValidator_IsValid_ConcurrentAccess(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.LoadFromFiles(context.Background(), writePromoFiles(t)))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			codes := []string{"PIZZAPARTY", "FREESHIP1", "SUSHI2024", "NOTEXIST"}
			code := codes[n%len(codes)]
			got := v.IsValid(context.Background(), code)

			if code == "NOTEXIST" && got {
				t.Errorf("expected %s to be invalid", code)
			}
			if code != "NOTEXIST" && !got {
				t.Errorf("expected %s to be valid", code)
			}
		}(i)
	}
	wg.Wait()
}

func TestValidator_GetStats_BeforeLoading(t *testing.T) {
	stats := NewValidator().GetStats()
	assert.Equal(t, 0, stats["total_files"])
	assert.Equal(t, 0, stats["total_coupons"])
}
