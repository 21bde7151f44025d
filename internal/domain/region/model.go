package region

// Region is a voivodeship, the administrative unit league groups are split by.
type Region struct {
	ID   int64
	Name string
}
