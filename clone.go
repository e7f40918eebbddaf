package fieldcodec

// Cloner allows types to provide deep copy logic.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. Schema and Record both implement it; the
// pipeline relies on it to build output records without touching its input.
type Cloner[T any] interface {
	Clone() T
}

var (
	_ Cloner[Schema] = Schema{}
	_ Cloner[Record] = Record{}
)
