package detect

import (
	"fmt"
	"strings"
)

// buildSummarizePrompt renders the instruction that compresses a verbose
// claim into a short search query.
func buildSummarizePrompt(claim string) string {
	return fmt.Sprintf(
		"You are an assistant that converts verbose claims into concise news-search queries. "+
			"Keep key entities, numbers, places, and verbs. 8 words or fewer.\n\n"+
			"Claim: %q\nSearch query:",
		claim,
	)
}

// BuildVerdictPrompt renders the classification instruction for a claim and
// its evidence list. Sources are enumerated starting from 1. Pure formatting,
// no failure mode.
func BuildVerdictPrompt(claim string, sources []string) string {
	var b strings.Builder
	for i, src := range sources {
		fmt.Fprintf(&b, "%d. %s\n", i+1, src)
	}

	return fmt.Sprintf(
		"Claim:\n%q\n\nSources:\n%s\n"+
			"Task:\nBased on these sources, is the claim likely true or likely fake?\n"+
			"Respond in JSON with keys `verdict` (Likely True | Likely Fake | Unverifiable) "+
			"and `explanation` (one-sentence reason).",
		claim, b.String(),
	)
}
