package skillgraph

// Unit identifies an ATP unit, the top-level subject area of the curriculum.
type Unit string

const (
	UnitCivilLaw       Unit = "civil-law"
	UnitContractLaw    Unit = "contract-law"
	UnitCriminalLaw    Unit = "criminal-law"
	UnitCivilProcedure Unit = "civil-procedure"
	UnitPublicLaw      Unit = "public-law"
	UnitProfessional   Unit = "professional-conduct"
)

// AllUnits returns all units in display order.
func AllUnits() []Unit {
	return []Unit{
		UnitCivilLaw,
		UnitContractLaw,
		UnitCriminalLaw,
		UnitCivilProcedure,
		UnitPublicLaw,
		UnitProfessional,
	}
}

// UnitDisplayName returns a human-readable name for a unit.
func UnitDisplayName(u Unit) string {
	switch u {
	case UnitCivilLaw:
		return "Civil Law"
	case UnitContractLaw:
		return "Contract Law"
	case UnitCriminalLaw:
		return "Criminal Law"
	case UnitCivilProcedure:
		return "Civil Procedure"
	case UnitPublicLaw:
		return "Public Law"
	case UnitProfessional:
		return "Professional Conduct"
	default:
		return string(u)
	}
}

// Format is how a practice item is answered.
type Format string

const (
	FormatWritten  Format = "written"
	FormatOral     Format = "oral"
	FormatDrafting Format = "drafting"
	FormatMCQ      Format = "mcq"
)

// AllFormats returns every item format.
func AllFormats() []Format {
	return []Format{FormatWritten, FormatOral, FormatDrafting, FormatMCQ}
}

// ValidFormat reports whether f is a known format.
func ValidFormat(f Format) bool {
	switch f {
	case FormatWritten, FormatOral, FormatDrafting, FormatMCQ:
		return true
	}
	return false
}

// Skill is a single micro-skill node in the curriculum graph.
// The engine treats skills as read-only curriculum data.
type Skill struct {
	ID             string
	Name           string
	Unit           Unit
	ExamWeight     float64 // share of exam importance, 0-1
	DifficultyTier int     // 1 (intro) .. 5 (stretch)
	Formats        []Format
	Core           bool
	Prerequisites  []string
}

// SupportsFormat reports whether the skill can be practiced in format f.
func (s Skill) SupportsFormat(f Format) bool {
	for _, sf := range s.Formats {
		if sf == f {
			return true
		}
	}
	return false
}
