package store

// DefaultItems returns the starter practice catalog. Weights per item sum
// to 1.0 across the skills the item exercises; error tags name the
// diagnosis codes graders may attach to a failed attempt.
func DefaultItems() []Item {
	return []Item{
		{
			ID:               "item-civ-found-mcq-1",
			Title:            "Sources of law and statutory hierarchy",
			Format:           "mcq",
			Difficulty:       2,
			EstimatedMinutes: 15,
			SkillWeights:     JSON(map[string]float64{"civ-foundations": 1.0}),
			ErrorTags:        JSON([]string{"rule-statement", "terminology"}),
			Active:           true,
		},
		{
			ID:               "item-civ-oblig-mcq-1",
			Title:            "Performance, default and set-off",
			Format:           "mcq",
			Difficulty:       3,
			EstimatedMinutes: 20,
			SkillWeights:     JSON(map[string]float64{"civ-obligations": 0.8, "civ-foundations": 0.2}),
			ErrorTags:        JSON([]string{"rule-application", "fact-misreading"}),
			Active:           true,
		},
		{
			ID:               "item-civ-oblig-essay-1",
			Title:            "Assignment of claims: essay problem",
			Format:           "written",
			Difficulty:       4,
			EstimatedMinutes: 45,
			SkillWeights:     JSON(map[string]float64{"civ-obligations": 0.7, "con-formation": 0.3}),
			ErrorTags:        JSON([]string{"issue-spotting", "incomplete-analysis", "conclusion-support"}),
			Active:           true,
		},
		{
			ID:               "item-civ-prop-essay-1",
			Title:            "Acquisition of ownership and registration",
			Format:           "written",
			Difficulty:       3,
			EstimatedMinutes: 40,
			SkillWeights:     JSON(map[string]float64{"civ-property": 0.85, "civ-foundations": 0.15}),
			ErrorTags:        JSON([]string{"rule-application", "formalities"}),
			Active:           true,
		},
		{
			ID:               "item-civ-delict-essay-1",
			Title:            "Fault liability and causation chains",
			Format:           "written",
			Difficulty:       4,
			EstimatedMinutes: 50,
			SkillWeights:     JSON(map[string]float64{"civ-delict": 0.8, "civ-obligations": 0.2}),
			ErrorTags:        JSON([]string{"issue-spotting", "counterargument", "incomplete-analysis"}),
			Active:           true,
		},
		{
			ID:               "item-civ-family-oral-1",
			Title:            "Intestate succession: oral examination set",
			Format:           "oral",
			Difficulty:       3,
			EstimatedMinutes: 25,
			SkillWeights:     JSON(map[string]float64{"civ-family-succession": 1.0}),
			ErrorTags:        JSON([]string{"oral-delivery", "rule-statement"}),
			Active:           true,
		},
		{
			ID:               "item-con-form-mcq-1",
			Title:            "Offer, acceptance and defects of consent",
			Format:           "mcq",
			Difficulty:       2,
			EstimatedMinutes: 15,
			SkillWeights:     JSON(map[string]float64{"con-formation": 1.0}),
			ErrorTags:        JSON([]string{"rule-statement", "fact-misreading"}),
			Active:           true,
		},
		{
			ID:               "item-con-breach-essay-1",
			Title:            "Termination and damages after late delivery",
			Format:           "written",
			Difficulty:       4,
			EstimatedMinutes: 45,
			SkillWeights:     JSON(map[string]float64{"con-breach-remedies": 0.6, "con-interpretation": 0.25, "con-formation": 0.15}),
			ErrorTags:        JSON([]string{"issue-spotting", "rule-application", "conclusion-support"}),
			Active:           true,
		},
		{
			ID:               "item-con-draft-1",
			Title:            "Draft a supply agreement with limitation clauses",
			Format:           "drafting",
			Difficulty:       4,
			EstimatedMinutes: 60,
			SkillWeights:     JSON(map[string]float64{"con-drafting": 0.75, "con-breach-remedies": 0.25}),
			ErrorTags:        JSON([]string{"drafting-structure", "formalities", "terminology"}),
			Active:           true,
		},
		{
			ID:               "item-crim-gen-mcq-1",
			Title:            "Intent, negligence and attempt",
			Format:           "mcq",
			Difficulty:       3,
			EstimatedMinutes: 20,
			SkillWeights:     JSON(map[string]float64{"crim-general": 1.0}),
			ErrorTags:        JSON([]string{"rule-statement", "terminology"}),
			Active:           true,
		},
		{
			ID:               "item-crim-off-essay-1",
			Title:            "Qualified theft versus fraud: case analysis",
			Format:           "written",
			Difficulty:       4,
			EstimatedMinutes: 50,
			SkillWeights:     JSON(map[string]float64{"crim-offenses": 0.7, "crim-general": 0.3}),
			ErrorTags:        JSON([]string{"issue-spotting", "rule-application", "incomplete-analysis"}),
			Active:           true,
		},
		{
			ID:               "item-crim-proc-oral-1",
			Title:            "Arrest, custody and defense rights drill",
			Format:           "oral",
			Difficulty:       3,
			EstimatedMinutes: 25,
			SkillWeights:     JSON(map[string]float64{"crim-procedure": 0.8, "pub-constitutional": 0.2}),
			ErrorTags:        JSON([]string{"procedural-posture", "oral-delivery", "burden-of-proof"}),
			Active:           true,
		},
		{
			ID:               "item-proc-juris-mcq-1",
			Title:            "Venue and subject-matter jurisdiction",
			Format:           "mcq",
			Difficulty:       2,
			EstimatedMinutes: 15,
			SkillWeights:     JSON(map[string]float64{"proc-jurisdiction": 1.0}),
			ErrorTags:        JSON([]string{"procedural-posture", "deadline-computation"}),
			Active:           true,
		},
		{
			ID:               "item-proc-plead-draft-1",
			Title:            "Draft a statement of claim with interim relief",
			Format:           "drafting",
			Difficulty:       4,
			EstimatedMinutes: 55,
			SkillWeights:     JSON(map[string]float64{"proc-pleadings": 0.65, "proc-jurisdiction": 0.2, "civ-obligations": 0.15}),
			ErrorTags:        JSON([]string{"drafting-structure", "formalities", "procedural-posture"}),
			Active:           true,
		},
		{
			ID:               "item-proc-evid-essay-1",
			Title:            "Burden of proof and witness credibility",
			Format:           "written",
			Difficulty:       3,
			EstimatedMinutes: 40,
			SkillWeights:     JSON(map[string]float64{"proc-evidence": 0.85, "proc-jurisdiction": 0.15}),
			ErrorTags:        JSON([]string{"burden-of-proof", "fact-misreading", "authority-citation"}),
			Active:           true,
		},
		{
			ID:               "item-proc-appeal-draft-1",
			Title:            "Draft an appellate brief on procedural error",
			Format:           "drafting",
			Difficulty:       5,
			EstimatedMinutes: 60,
			SkillWeights:     JSON(map[string]float64{"proc-appeals": 0.7, "proc-pleadings": 0.3}),
			ErrorTags:        JSON([]string{"drafting-structure", "deadline-computation", "authority-citation"}),
			Active:           true,
		},
		{
			ID:               "item-pub-const-essay-1",
			Title:            "Proportionality review of a fundamental-rights restriction",
			Format:           "written",
			Difficulty:       4,
			EstimatedMinutes: 45,
			SkillWeights:     JSON(map[string]float64{"pub-constitutional": 0.8, "pub-administrative": 0.2}),
			ErrorTags:        JSON([]string{"issue-spotting", "counterargument", "authority-citation"}),
			Active:           true,
		},
		{
			ID:               "item-pub-admin-mcq-1",
			Title:            "Administrative acts and judicial review windows",
			Format:           "mcq",
			Difficulty:       3,
			EstimatedMinutes: 20,
			SkillWeights:     JSON(map[string]float64{"pub-administrative": 0.85, "proc-appeals": 0.15}),
			ErrorTags:        JSON([]string{"deadline-computation", "procedural-posture"}),
			Active:           true,
		},
		{
			ID:               "item-ethics-mcq-1",
			Title:            "Conflicts of interest and confidentiality",
			Format:           "mcq",
			Difficulty:       2,
			EstimatedMinutes: 15,
			SkillWeights:     JSON(map[string]float64{"ethics-duties": 0.7, "ethics-client": 0.3}),
			ErrorTags:        JSON([]string{"rule-statement", "terminology"}),
			Active:           true,
		},
		{
			ID:               "item-ethics-oral-1",
			Title:            "Client intake dilemmas: oral defense",
			Format:           "oral",
			Difficulty:       3,
			EstimatedMinutes: 25,
			SkillWeights:     JSON(map[string]float64{"ethics-client": 0.75, "ethics-duties": 0.25}),
			ErrorTags:        JSON([]string{"oral-delivery", "incomplete-analysis"}),
			Active:           true,
		},
	}
}
