package memory

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based transaction IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID prefixed with TXN.
func (g *ULIDGenerator) Generate() string {
	return "TXN" + ulid.Make().String()
}
