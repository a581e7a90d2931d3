// Package types contains common types used across the application
package types

import "fmt"

// Role groups specs by their raid job.
type Role string

// Recognized roles.
const (
	RoleMelee  Role = "melee"
	RoleRanged Role = "ranged"
	RoleCaster Role = "caster"
	RoleHealer Role = "healer"
	RoleTank   Role = "tank"
)

// Melee reports whether the role swings in melee range.
func (r Role) Melee() bool { return r == RoleMelee || r == RoleTank }

// Grade is a letter band over a 0-100 score.
type Grade string

// Grade bands. GradeNone marks results that carry no numeric score.
const (
	GradeS    Grade = "S"
	GradeA    Grade = "A"
	GradeB    Grade = "B"
	GradeC    Grade = "C"
	GradeD    Grade = "D"
	GradeF    Grade = "F"
	GradeNone Grade = ""
)

// GradeFor bands a 0-100 score into a letter grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 95:
		return GradeS
	case score >= 85:
		return GradeA
	case score >= 75:
		return GradeB
	case score >= 60:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// SpecKey builds the "spec class" key used by benchmark documents and the
// static rule tables, e.g. "Shadow Priest".
func SpecKey(class, spec string) string {
	return fmt.Sprintf("%s %s", spec, class)
}
