package diagnosis

import (
	"sort"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
)

// TagCounts tallies how often each error tag appears across a skill's
// attempt history. Duplicate tags within one attempt count once.
func TagCounts(attempts []mastery.SkillAttempt) map[string]int {
	counts := make(map[string]int)
	for _, a := range attempts {
		seen := make(map[string]bool, len(a.ErrorTags))
		for _, tag := range a.ErrorTags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	return counts
}

// Signature returns the user's topN most frequent error tags for a skill,
// ordered by count descending, ties broken by tag code ascending so the
// result is deterministic.
func Signature(attempts []mastery.SkillAttempt, topN int) []string {
	if topN <= 0 {
		return nil
	}
	counts := TagCounts(attempts)
	if len(counts) == 0 {
		return nil
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if len(tags) > topN {
		tags = tags[:topN]
	}
	return tags
}

// Overlap returns the tags present in both the given set and the signature,
// preserving signature order.
func Overlap(tags []string, signature []string) []string {
	if len(tags) == 0 || len(signature) == 0 {
		return nil
	}
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}
	var hits []string
	for _, s := range signature {
		if present[s] {
			hits = append(hits, s)
		}
	}
	return hits
}
