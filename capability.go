package dolly

// MatchMode controls how a class override matches an instance's type.
type MatchMode int

const (
	// MatchExact matches instances whose pointee type is exactly the rule type.
	MatchExact MatchMode = iota

	// MatchAssignable matches the rule type and its Go "subtypes": types that
	// implement a rule interface, or structs that embed the rule type.
	MatchAssignable
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchAssignable:
		return "assignable"
	default:
		return "unknown"
	}
}

// FieldMode represents how a single struct field is copied.
// Use these constants in struct tags: `clone:"keep"`
type FieldMode string

const (
	// FieldDeep routes the field value through the cloner (default).
	FieldDeep FieldMode = "deep"

	// FieldKeep copies the field value as-is, sharing any referenced data.
	FieldKeep FieldMode = "keep"

	// FieldShallow copies the field value one level deep.
	FieldShallow FieldMode = "shallow"

	// FieldSkip leaves the field at its zero value in the clone.
	FieldSkip FieldMode = "-"
)

// tagClone is the struct tag read for field modes.
const tagClone = "clone"

// validMatchModes contains all valid match modes.
var validMatchModes = map[MatchMode]bool{
	MatchExact:      true,
	MatchAssignable: true,
}

// validFieldModes contains all valid field modes for tag validation.
var validFieldModes = map[FieldMode]bool{
	FieldDeep:    true,
	FieldKeep:    true,
	FieldShallow: true,
	FieldSkip:    true,
}

// IsValidMatchMode returns true if the mode is a known match mode.
func IsValidMatchMode(m MatchMode) bool {
	return validMatchModes[m]
}

// IsValidFieldMode returns true if the mode is a known field mode.
func IsValidFieldMode(m FieldMode) bool {
	return validFieldModes[m]
}
