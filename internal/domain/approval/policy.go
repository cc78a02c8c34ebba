// Package approval defines the approval-level hierarchy shared by every
// document kind: three sign-off tiers regardless of document type.
package approval

// Level is an approval tier. Zero means the document has not been submitted.
type Level int

const (
	LevelNotSubmitted   Level = 0
	LevelDeptManager    Level = 1
	LevelUnitManager    Level = 2
	LevelGeneralManager Level = 3
)

// MaxLevel is the final sign-off tier
const MaxLevel = LevelGeneralManager

var levelLabels = map[Level]string{
	LevelNotSubmitted:   "Not Submitted",
	LevelDeptManager:    "Department Manager",
	LevelUnitManager:    "Unit Manager",
	LevelGeneralManager: "General Manager",
}

// Policy resolves approval levels. It is an immutable value so tests can
// substitute alternates; Default() is the production three-tier chain.
type Policy struct {
	maxLevel Level
	labels   map[Level]string
}

// Default returns the standard three-tier approval chain
func Default() Policy {
	return Policy{maxLevel: MaxLevel, labels: levelLabels}
}

// Next returns the approval level that must sign off after current.
// The second return value is false once the final level has signed.
func (p Policy) Next(current Level) (Level, bool) {
	if current >= p.maxLevel {
		return 0, false
	}
	return current + 1, true
}

// IsFinal returns true if the level is the last required sign-off
func (p Policy) IsFinal(level Level) bool {
	return level >= p.maxLevel
}

// Label resolves a level to its human-readable title
func (p Policy) Label(level Level) string {
	if label, ok := p.labels[level]; ok {
		return label
	}
	return "Unknown"
}
