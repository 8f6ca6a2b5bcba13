package domain

// Unavailable is shown for country facts that could not be fetched.
const Unavailable = "Unavailable"

// CountryFacts are the headline facts about the country a destination is in.
type CountryFacts struct {
	Country  string `json:"country,omitempty"`
	Language string `json:"language"`
	Currency string `json:"currency"`
}

// UnavailableFacts is returned when the country, or its facts, cannot be
// resolved.
func UnavailableFacts() CountryFacts {
	return CountryFacts{Language: Unavailable, Currency: Unavailable}
}

// Summary is the encyclopedia extract for a destination.
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	PageURL string `json:"page_url,omitempty"`
}

// DestinationInfo is everything shown on the destination information page.
// Each part degrades independently: a missing summary carries a fallback
// message, missing facts read Unavailable and missing photos leave Photos
// empty.
type DestinationInfo struct {
	Name     string       `json:"name"`
	Summary  Summary      `json:"summary"`
	Facts    CountryFacts `json:"facts"`
	Photos   []Photo      `json:"photos"`
	Warnings []string     `json:"warnings,omitempty"`
}
