package riot

// Labels for the queues that still show up in match-v5 history.
var queueDescriptions = map[int]string{
	0:    "Custom",
	400:  "Normal Draft",
	420:  "Ranked Solo/Duo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	490:  "Quickplay",
	700:  "Clash",
	720:  "ARAM Clash",
	830:  "Co-op vs AI Intro",
	840:  "Co-op vs AI Beginner",
	850:  "Co-op vs AI Intermediate",
	900:  "ARURF",
	1020: "One for All",
	1300: "Nexus Blitz",
	1400: "Ultimate Spellbook",
	1700: "Arena",
	1900: "URF",
}

// QueueDescription returns a readable label for a match queue id.
func QueueDescription(queueID int) string {
	if description, ok := queueDescriptions[queueID]; ok {
		return description
	}
	return "Unknown Game Type"
}
