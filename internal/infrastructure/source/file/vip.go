package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"customer_extract/internal/domain/customer"
)

// VIPSource reads VIP customer ids, one per line.
type VIPSource struct {
	path string
}

func NewVIPSource(path string) *VIPSource {
	return &VIPSource{path: path}
}

func (s *VIPSource) FetchVIPIDs(ctx context.Context) (customer.VIPSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open vip file: %w", err)
	}
	defer f.Close()

	return ReadVIPIDs(f)
}

// ReadVIPIDs collects every line that, once trimmed, is made only of ASCII
// digits. Other lines are skipped.
func ReadVIPIDs(r io.Reader) (customer.VIPSet, error) {
	set := customer.NewVIPSet()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !isDigits(line) {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			continue
		}
		set[id] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vip ids: %w", err)
	}
	return set, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
