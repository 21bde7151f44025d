package league

import "fmt"

// League is one node of the competition tree. Top divisions have no parent;
// every descendant carries a denormalized pointer to its root for fast
// filtering.
type League struct {
	ID              int64
	Name            string
	ParentID        int64
	HighestParentID int64
	AutoCreated     bool
}

func (l League) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// IsRoot reports whether the league is a top division.
func (l League) IsRoot() bool {
	return l.ParentID == 0
}

// Season is a named season, e.g. "2022/2023".
type Season struct {
	ID   int64
	Name string
}
