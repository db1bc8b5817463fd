package diagnosis

// seedTags is the built-in error taxonomy used by grading for bar exam
// practice. Codes are stable wire identifiers; labels are for display.
var seedTags = []ErrorTag{
	{
		Code:        "issue-spotting",
		Label:       "Missed issue",
		Description: "Failed to identify a legal issue raised by the facts.",
	},
	{
		Code:        "rule-statement",
		Label:       "Incorrect rule",
		Description: "Stated the governing rule incorrectly or incompletely.",
	},
	{
		Code:        "rule-application",
		Label:       "Misapplied rule",
		Description: "Stated the rule correctly but applied it wrongly to the facts.",
	},
	{
		Code:        "authority-citation",
		Label:       "Citation error",
		Description: "Cited the wrong provision or authority, or omitted a required citation.",
	},
	{
		Code:        "fact-misreading",
		Label:       "Misread facts",
		Description: "Analysis rests on facts not in the problem or overlooks given facts.",
	},
	{
		Code:        "incomplete-analysis",
		Label:       "Incomplete analysis",
		Description: "Stopped short of the full chain of reasoning the question requires.",
	},
	{
		Code:        "counterargument",
		Label:       "Ignored counterargument",
		Description: "Did not address the obvious opposing position.",
	},
	{
		Code:        "conclusion-support",
		Label:       "Unsupported conclusion",
		Description: "Conclusion does not follow from the analysis given.",
	},
	{
		Code:        "time-management",
		Label:       "Ran out of time",
		Description: "Answer quality collapsed in later parts under the time limit.",
	},
	{
		Code:        "procedural-posture",
		Label:       "Wrong posture",
		Description: "Analyzed the question from the wrong procedural standpoint.",
	},
	{
		Code:        "deadline-computation",
		Label:       "Deadline miscalculation",
		Description: "Computed a procedural time limit incorrectly.",
	},
	{
		Code:        "drafting-structure",
		Label:       "Structure",
		Description: "Document lacks the required structure or mandatory clauses.",
	},
	{
		Code:        "formalities",
		Label:       "Formalities",
		Description: "Missed formal requirements (parties, signatures, annexes).",
	},
	{
		Code:        "terminology",
		Label:       "Terminology",
		Description: "Used legal terms of art incorrectly.",
	},
	{
		Code:        "oral-delivery",
		Label:       "Delivery",
		Description: "Oral answer was disorganized or unresponsive to follow-up questions.",
	},
	{
		Code:        "burden-of-proof",
		Label:       "Burden of proof",
		Description: "Assigned the burden of proof to the wrong party.",
	},
}
