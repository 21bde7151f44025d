package club

import (
	"fmt"
	"strings"
)

// Club is a canonical football club. Aliases is an append-only log of every
// raw name variant the import has ever seen for this club.
type Club struct {
	ID          int64
	PublicID    string
	Name        string
	Aliases     string
	Address     string
	RegionID    int64
	MapperID    int64
	ManagerID   int64
	AutoCreated bool
}

func (c Club) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// HasAlias reports whether the raw name variant was already recorded.
func (c Club) HasAlias(raw string) bool {
	return raw != "" && strings.Contains(c.Aliases, raw)
}
