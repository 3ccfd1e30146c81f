package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"customer_extract/internal/domain/customer"
)

// RecordSource reads customers from a JSON file holding either one array of
// customers or a stream of customer objects (JSON Lines).
type RecordSource struct {
	path string
}

func NewRecordSource(path string) *RecordSource {
	return &RecordSource{path: path}
}

func (s *RecordSource) FetchCustomers(ctx context.Context) ([]customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	customers, err := DecodeCustomers(data)
	if err != nil {
		return nil, fmt.Errorf("decode records file %s: %w", s.path, err)
	}
	return customers, nil
}

// DecodeCustomers accepts a JSON array of customers or concatenated customer
// objects. Empty input decodes to no customers.
func DecodeCustomers(data []byte) ([]customer.Customer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []customer.Customer{}, nil
	}

	if trimmed[0] == '[' {
		var customers []customer.Customer
		if err := json.Unmarshal(trimmed, &customers); err != nil {
			return nil, err
		}
		if customers == nil {
			customers = []customer.Customer{}
		}
		return customers, nil
	}

	customers := make([]customer.Customer, 0)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for {
		var c customer.Customer
		err := dec.Decode(&c)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", len(customers), err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}
