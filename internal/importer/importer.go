package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arekzadka7/mini-crm/internal/domain"
)

type CustomerWriter interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Skipped  int
}

// CSVImporter reads name,email,phone CSV files and creates customers.
type CSVImporter struct {
	reader         *csv.Reader
	repo           CustomerWriter
	skipDuplicates bool
}

func NewCSVImporter(r io.Reader, repo CustomerWriter, skipDuplicates bool) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:         csvr,
		repo:           repo,
		skipDuplicates: skipDuplicates,
	}
}

// Run parses every row and creates one customer per row. Rows already
// written stay written when a later row fails.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return res, errors.New("missing name column")
	}
	if _, ok := index["email"]; !ok {
		return res, errors.New("missing email column")
	}

	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		c, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := i.repo.Create(ctx, c); err != nil {
			if i.skipDuplicates && errors.Is(err, domain.ErrConstraintViolation) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("row %d (%s): %w", line, c.Email, err)
		}
		res.Imported++
	}

	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Customer, error) {
	c := domain.Customer{
		Name:  field(record, index, "name"),
		Email: field(record, index, "email"),
	}
	if c.Name == "" || c.Email == "" {
		return domain.Customer{}, errors.New("name and email are required")
	}
	if phone := field(record, index, "phone"); phone != "" {
		c.Phone = &phone
	}
	return c, nil
}

func field(record []string, index map[string]int, key string) string {
	i, ok := index[key]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
