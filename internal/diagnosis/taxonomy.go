package diagnosis

// ErrorTag defines a known error pattern the grading service can attach to
// an attempt. The engine treats tag codes as opaque; the taxonomy exists so
// rationale strings and reports can show human-readable labels.
type ErrorTag struct {
	Code        string
	Label       string
	Description string
}

// registry is the package-level tag registry, keyed by code.
var registry map[string]*ErrorTag

func init() {
	registry = make(map[string]*ErrorTag, len(seedTags))
	for i := range seedTags {
		registry[seedTags[i].Code] = &seedTags[i]
	}
}

// GetTag returns a tag by code, or nil if the code is not in the taxonomy.
// Unknown codes are legal; grading may emit tags the engine has no label for.
func GetTag(code string) *ErrorTag {
	return registry[code]
}

// TagLabel returns the display label for a code, falling back to the code
// itself for unknown tags.
func TagLabel(code string) string {
	if t := registry[code]; t != nil {
		return t.Label
	}
	return code
}

// AllTags returns every tag in the taxonomy.
func AllTags() []*ErrorTag {
	result := make([]*ErrorTag, 0, len(registry))
	for i := range seedTags {
		result = append(result, &seedTags[i])
	}
	return result
}
