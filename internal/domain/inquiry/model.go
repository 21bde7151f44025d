package inquiry

// Category classifies what a pending user inquiry is about.
type Category string

const (
	CategoryUser Category = "user"
	CategoryClub Category = "club"
	CategoryTeam Category = "team"
)

// Request is a pending user inquiry. The import only ever reassigns the
// category of club/team inquiries whose subject is about to be rebuilt.
type Request struct {
	ID       int64
	Category Category
}
