package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
)

// Store persists inventory as a flat text file, one item per line:
//
//	product_id name quantity price expiration_date
//
// The file is rewritten in full on every Save. There is no partial-write
// recovery and no locking against concurrent writers; the tracker is a
// single-process tool.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads every persisted item. A missing file is not an error; it simply
// yields an empty inventory.
func (s *Store) Load(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("flatfile: open %s: %w", s.path, err)
	}
	defer f.Close()

	var items []*domain.Item
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		item, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("flatfile: %s line %d: %w", s.path, lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("flatfile: read %s: %w", s.path, err)
	}
	return items, nil
}

// Save overwrites the file with the given items.
func (s *Store) Save(ctx context.Context, items []*domain.Item) error {
	_ = ctx

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("flatfile: create %s: %w", s.path, err)
	}

	w := bufio.NewWriter(f)
	for _, item := range items {
		_, err = fmt.Fprintf(w, "%d %s %d %s %s\n",
			item.ProductID,
			item.Name,
			item.Quantity,
			strconv.FormatFloat(item.Price, 'g', -1, 64),
			item.Expiry,
		)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("flatfile: write %s: %w", s.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flatfile: flush %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flatfile: close %s: %w", s.path, err)
	}
	return nil
}

func parseLine(line string) (*domain.Item, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid product id %q", fields[0])
	}
	quantity, err := strconv.Atoi(fields[2])
	if err != nil || quantity < 0 {
		return nil, fmt.Errorf("invalid quantity %q", fields[2])
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", fields[3])
	}

	// Expiry is stored verbatim; a malformed date is treated as expired at
	// order time rather than rejected here.
	return &domain.Item{
		ProductID: id,
		Name:      fields[1],
		Quantity:  quantity,
		Price:     price,
		Expiry:    domain.Date(fields[4]),
	}, nil
}
