package testfixtures

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/hearing-board/internal/persistence"
)

// StaticSource is an in-memory persistence.TableSource. Its fingerprint
// changes whenever the table is replaced.
type StaticSource struct {
	mu      sync.Mutex
	table   persistence.Table
	version int
	err     error
	reads   int
}

// NewStaticSource returns a source serving table.
func NewStaticSource(table persistence.Table) *StaticSource {
	return &StaticSource{table: table, version: 1}
}

// SetTable replaces the served table.
func (s *StaticSource) SetTable(table persistence.Table) {
	s.mu.Lock()
	s.table = table
	s.version++
	s.mu.Unlock()
}

// FailWith makes every subsequent call return err. A nil err clears it.
func (s *StaticSource) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Reads reports how many times ReadTable succeeded.
func (s *StaticSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Fingerprint implements persistence.TableSource.
func (s *StaticSource) Fingerprint(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("static-%d", s.version), nil
}

// ReadTable implements persistence.TableSource.
func (s *StaticSource) ReadTable(context.Context) (persistence.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return persistence.Table{}, s.err
	}
	s.reads++
	return s.table, nil
}
