package domain

// LanguageByteCount is the size of one language's source in a repository.
type LanguageByteCount struct {
	Language string `json:"language"`
	Bytes    int64  `json:"bytes"`
}

// LanguageBytes is a repository's language breakdown, in the order the
// upstream document lists the languages.
type LanguageBytes []LanguageByteCount

// Total returns the sum of all byte counts.
func (lb LanguageBytes) Total() int64 {
	var total int64
	for _, c := range lb {
		total += c.Bytes
	}
	return total
}

// LanguageShare is a language's share of an aggregated byte total, in percent.
type LanguageShare struct {
	Language   string  `json:"language"`
	Percentage float64 `json:"percentage"`
}

// LanguageCount is the number of repositories whose primary language is Language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Summary holds the statistics derived from a repository listing.
type Summary struct {
	TotalStars   int             `json:"total_stars"`
	MedianStars  float64         `json:"median_stars"`
	TopLanguages []LanguageCount `json:"top_languages"`
}
