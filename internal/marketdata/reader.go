// Package marketdata decodes per-instrument daily price archives into
// ordered bar series.
package marketdata

import (
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
	"github.com/Ikkisovi/portifolio-dashboard/internal/storage/archive"
)

// rowLayout matches the archive timestamp column: 8-digit date, space, HH:MM.
const rowLayout = "20060102 15:04"

// Config holds decode parameters supplied by the surrounding configuration.
type Config struct {
	// PriceScale divides the integer price columns into real prices.
	PriceScale float64
	// Ext is the archive extension: "zip", "csv.xz", "csv.gz" or "csv".
	Ext string
	// MaxBadRows bounds how many unparseable rows are tolerated before the
	// whole archive is declared malformed. Zero selects the default bound.
	MaxBadRows int
}

// defaultMaxBadRows keeps decode work bounded on corrupted archives when the
// configuration does not set its own limit.
const defaultMaxBadRows = 100

// RowObserver receives the count of malformed rows skipped per archive.
type RowObserver interface {
	RecordSkippedRows(symbol string, rows int)
}

// Reader loads one instrument's historical daily bars from a compressed
// archive in a Store.
type Reader struct {
	store    archive.Store
	cfg      Config
	logger   *zap.Logger
	observer RowObserver
}

// NewReader creates a Reader over the given archive store.
func NewReader(store archive.Store, cfg Config, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PriceScale <= 0 {
		cfg.PriceScale = 1
	}
	if cfg.Ext == "" {
		cfg.Ext = "zip"
	}
	if cfg.MaxBadRows <= 0 {
		cfg.MaxBadRows = defaultMaxBadRows
	}
	return &Reader{store: store, cfg: cfg, logger: logger}
}

// SetObserver attaches a skipped-row observer. Optional.
func (r *Reader) SetObserver(o RowObserver) {
	r.observer = o
}

// ArchivePath returns the deterministic archive location for a symbol.
func (r *Reader) ArchivePath(symbol string) string {
	return strings.ToLower(symbol) + "." + r.cfg.Ext
}

// Load reads, decompresses and decodes the archive for symbol. The returned
// series is sorted by timestamp with duplicates dropped (keep-first). A bad
// row is skipped and logged; an absent archive, an undecodable archive, zero
// valid rows, or more than MaxBadRows skips all yield
// ErrArchiveMissingOrMalformed.
func (r *Reader) Load(ctx context.Context, symbol string) (core.PriceSeries, error) {
	path := r.ArchivePath(symbol)

	data, err := r.store.Read(ctx, path)
	if err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrArchiveMissingOrMalformed,
			fmt.Errorf("%s: %w", path, err))
	}

	rows, err := r.decompress(data)
	if err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrArchiveMissingOrMalformed,
			fmt.Errorf("%s: %w", path, err))
	}

	bars, badRows, err := r.parseRows(symbol, rows)
	if err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrArchiveMissingOrMalformed,
			fmt.Errorf("%s: %w", path, err))
	}
	if badRows > 0 {
		r.logger.Warn("skipped malformed archive rows",
			zap.String("symbol", symbol),
			zap.Int("rows", badRows))
		if r.observer != nil {
			r.observer.RecordSkippedRows(symbol, badRows)
		}
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	// Keep-first policy for duplicate timestamps.
	deduped := bars[:0]
	var prev time.Time
	for i, b := range bars {
		if i > 0 && b.Time.Equal(prev) {
			continue
		}
		deduped = append(deduped, b)
		prev = b.Time
	}

	return core.PriceSeries{Symbol: symbol, Bars: deduped}, nil
}

// decompress unwraps the archive bytes into the raw CSV payload.
func (r *Reader) decompress(data []byte) (io.Reader, error) {
	switch r.cfg.Ext {
	case "zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening zip: %w", err)
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("zip archive has no entries")
		}
		f, err := zr.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", zr.File[0].Name, err)
		}
		defer f.Close()
		payload, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("reading zip entry: %w", err)
		}
		return bytes.NewReader(payload), nil
	case "csv.xz":
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening xz stream: %w", err)
		}
		payload, err := io.ReadAll(xr)
		if err != nil {
			return nil, fmt.Errorf("reading xz stream: %w", err)
		}
		return bytes.NewReader(payload), nil
	case "csv.gz":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gr.Close()
		payload, err := io.ReadAll(gr)
		if err != nil {
			return nil, fmt.Errorf("reading gzip stream: %w", err)
		}
		return bytes.NewReader(payload), nil
	case "csv":
		return bytes.NewReader(data), nil
	default:
		return nil, fmt.Errorf("unsupported archive extension %q", r.cfg.Ext)
	}
}

// parseRows decodes the fixed-column row format: timestamp, then integer
// open/high/low/close scaled by PriceScale, then unscaled volume.
func (r *Reader) parseRows(symbol string, src io.Reader) ([]core.PriceBar, int, error) {
	var bars []core.PriceBar
	badRows := 0

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		bar, ok := r.parseRow(symbol, line)
		if !ok {
			badRows++
			if badRows > r.cfg.MaxBadRows {
				return nil, badRows, fmt.Errorf("more than %d malformed rows", r.cfg.MaxBadRows)
			}
			continue
		}
		bars = append(bars, bar)
	}
	if err := sc.Err(); err != nil {
		return nil, badRows, fmt.Errorf("scanning rows: %w", err)
	}

	if len(bars) == 0 {
		return nil, badRows, fmt.Errorf("no valid rows")
	}
	return bars, badRows, nil
}

func (r *Reader) parseRow(symbol, line string) (core.PriceBar, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return core.PriceBar{}, false
	}

	ts, err := time.ParseInLocation(rowLayout, strings.TrimSpace(fields[0]), time.UTC)
	if err != nil {
		return core.PriceBar{}, false
	}

	var px [4]float64
	for i := 0; i < 4; i++ {
		raw, err := strconv.ParseInt(strings.TrimSpace(fields[i+1]), 10, 64)
		if err != nil {
			return core.PriceBar{}, false
		}
		px[i] = float64(raw) / r.cfg.PriceScale
	}

	volume, err := strconv.ParseInt(strings.TrimSpace(fields[5]), 10, 64)
	if err != nil {
		return core.PriceBar{}, false
	}

	return core.PriceBar{
		Symbol: symbol,
		Time:   ts,
		Open:   px[0],
		High:   px[1],
		Low:    px[2],
		Close:  px[3],
		Volume: volume,
	}, true
}
