package skillgraph

// DefaultSkills returns the built-in bar exam curriculum. The seed command
// persists these, and tests build graphs from them directly.
func DefaultSkills() []Skill {
	return []Skill{
		// Civil law
		{
			ID:             "civ-foundations",
			Name:           "Foundations of Civil Law",
			Unit:           UnitCivilLaw,
			ExamWeight:     0.55,
			DifficultyTier: 1,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Core:           true,
		},
		{
			ID:             "civ-obligations",
			Name:           "Law of Obligations",
			Unit:           UnitCivilLaw,
			ExamWeight:     0.90,
			DifficultyTier: 3,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Core:           true,
			Prerequisites:  []string{"civ-foundations"},
		},
		{
			ID:             "civ-property",
			Name:           "Property Law",
			Unit:           UnitCivilLaw,
			ExamWeight:     0.70,
			DifficultyTier: 3,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Prerequisites:  []string{"civ-foundations"},
		},
		{
			ID:             "civ-delict",
			Name:           "Delictual Liability",
			Unit:           UnitCivilLaw,
			ExamWeight:     0.80,
			DifficultyTier: 4,
			Formats:        []Format{FormatWritten, FormatOral},
			Prerequisites:  []string{"civ-obligations"},
		},
		{
			ID:             "civ-family-succession",
			Name:           "Family & Succession Law",
			Unit:           UnitCivilLaw,
			ExamWeight:     0.45,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Prerequisites:  []string{"civ-foundations"},
		},

		// Contract law
		{
			ID:             "con-formation",
			Name:           "Contract Formation",
			Unit:           UnitContractLaw,
			ExamWeight:     0.85,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Core:           true,
			Prerequisites:  []string{"civ-obligations"},
		},
		{
			ID:             "con-interpretation",
			Name:           "Contract Interpretation",
			Unit:           UnitContractLaw,
			ExamWeight:     0.60,
			DifficultyTier: 3,
			Formats:        []Format{FormatWritten, FormatOral},
			Prerequisites:  []string{"con-formation"},
		},
		{
			ID:             "con-breach-remedies",
			Name:           "Breach & Remedies",
			Unit:           UnitContractLaw,
			ExamWeight:     0.85,
			DifficultyTier: 4,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Prerequisites:  []string{"con-formation"},
		},
		{
			ID:             "con-drafting",
			Name:           "Contract Drafting",
			Unit:           UnitContractLaw,
			ExamWeight:     0.65,
			DifficultyTier: 5,
			Formats:        []Format{FormatDrafting},
			Prerequisites:  []string{"con-interpretation", "con-breach-remedies"},
		},

		// Criminal law
		{
			ID:             "crim-general",
			Name:           "General Principles of Criminal Law",
			Unit:           UnitCriminalLaw,
			ExamWeight:     0.75,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Core:           true,
		},
		{
			ID:             "crim-offenses",
			Name:           "Specific Offenses",
			Unit:           UnitCriminalLaw,
			ExamWeight:     0.70,
			DifficultyTier: 3,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Prerequisites:  []string{"crim-general"},
		},
		{
			ID:             "crim-procedure",
			Name:           "Criminal Procedure",
			Unit:           UnitCriminalLaw,
			ExamWeight:     0.60,
			DifficultyTier: 3,
			Formats:        []Format{FormatMCQ, FormatOral},
			Prerequisites:  []string{"crim-general"},
		},

		// Civil procedure
		{
			ID:             "proc-jurisdiction",
			Name:           "Jurisdiction & Competence",
			Unit:           UnitCivilProcedure,
			ExamWeight:     0.65,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Core:           true,
			Prerequisites:  []string{"civ-foundations"},
		},
		{
			ID:             "proc-pleadings",
			Name:           "Pleadings & Motions",
			Unit:           UnitCivilProcedure,
			ExamWeight:     0.75,
			DifficultyTier: 4,
			Formats:        []Format{FormatWritten, FormatDrafting},
			Prerequisites:  []string{"proc-jurisdiction"},
		},
		{
			ID:             "proc-evidence",
			Name:           "Law of Evidence",
			Unit:           UnitCivilProcedure,
			ExamWeight:     0.80,
			DifficultyTier: 4,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Prerequisites:  []string{"proc-jurisdiction"},
		},
		{
			ID:             "proc-appeals",
			Name:           "Appeals & Extraordinary Remedies",
			Unit:           UnitCivilProcedure,
			ExamWeight:     0.40,
			DifficultyTier: 5,
			Formats:        []Format{FormatWritten, FormatDrafting},
			Prerequisites:  []string{"proc-pleadings", "proc-evidence"},
		},

		// Public law
		{
			ID:             "pub-constitutional",
			Name:           "Constitutional Law",
			Unit:           UnitPublicLaw,
			ExamWeight:     0.70,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatWritten, FormatOral},
			Core:           true,
		},
		{
			ID:             "pub-administrative",
			Name:           "Administrative Law & Judicial Review",
			Unit:           UnitPublicLaw,
			ExamWeight:     0.55,
			DifficultyTier: 3,
			Formats:        []Format{FormatMCQ, FormatWritten},
			Prerequisites:  []string{"pub-constitutional"},
		},

		// Professional conduct
		{
			ID:             "ethics-duties",
			Name:           "Professional Duties & Ethics",
			Unit:           UnitProfessional,
			ExamWeight:     0.50,
			DifficultyTier: 1,
			Formats:        []Format{FormatMCQ, FormatOral},
			Core:           true,
		},
		{
			ID:             "ethics-client",
			Name:           "Client Relations & Conflicts of Interest",
			Unit:           UnitProfessional,
			ExamWeight:     0.45,
			DifficultyTier: 2,
			Formats:        []Format{FormatMCQ, FormatOral, FormatWritten},
			Prerequisites:  []string{"ethics-duties"},
		},
	}
}
