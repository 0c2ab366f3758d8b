package drill

// Category is the terrain class under a point.
type Category int

const (
	CategoryGround Category = iota
	CategoryGoal
	CategoryBoulder
	CategoryBackground
	CategoryRiver
	CategoryBoundary
	CategoryHouse
	CategoryHill
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryGround:
		return "ground"
	case CategoryGoal:
		return "goal"
	case CategoryBoulder:
		return "boulder"
	case CategoryBackground:
		return "background"
	case CategoryRiver:
		return "river"
	case CategoryBoundary:
		return "boundary"
	case CategoryHouse:
		return "house"
	case CategoryHill:
		return "hill"
	default:
		return "unknown"
	}
}

// Fatal reports whether entering the category ends the run.
func (c Category) Fatal() bool {
	switch c {
	case CategoryBackground, CategoryRiver, CategoryBoundary, CategoryHouse, CategoryHill:
		return true
	}
	return false
}

// Classifier answers terrain queries for a generated level.
// Implementations must be pure for a fixed generation.
type Classifier interface {
	// Classify returns the category at world point (x, y).
	Classify(x, y float64) Category
	// Noise returns the local terrain texture in [0, 1].
	Noise(x, y float64) float64
}

// Builder generates the terrain for a level from the session's random
// stream. It is called right after the stream is reseeded so the same seed
// always yields the same ground.
type Builder func(src Source) Classifier

// Boulder is a circular obstacle.
type Boulder struct {
	X, Y   float64
	Radius float64
}

// Contains reports whether (x, y) lies inside the boulder.
func (b Boulder) Contains(x, y float64) bool {
	dx, dy := x-b.X, y-b.Y
	return dx*dx+dy*dy <= b.Radius*b.Radius
}
