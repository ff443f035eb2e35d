package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewPrefixedID builds short human-readable ids like BIN-3F2A9C01.
func NewPrefixedID(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s", prefix, suffix)
}
