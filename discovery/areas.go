package discovery

import "strings"

// AreaTag is one entry of the fixed research-area taxonomy.
type AreaTag string

const (
	AreaArtificialIntelligence AreaTag = "artificial_intelligence"
	AreaComputerScience        AreaTag = "computer_science"
	AreaDataScience            AreaTag = "data_science"
	AreaCybersecurity          AreaTag = "cybersecurity"
	AreaRobotics               AreaTag = "robotics"
	AreaSoftwareEngineering    AreaTag = "software_engineering"
	AreaComputerVision         AreaTag = "computer_vision"
	AreaNLP                    AreaTag = "natural_language_processing"
)

// areaOrder fixes iteration order so extraction output is deterministic.
var areaOrder = []AreaTag{
	AreaArtificialIntelligence,
	AreaComputerScience,
	AreaDataScience,
	AreaCybersecurity,
	AreaRobotics,
	AreaSoftwareEngineering,
	AreaComputerVision,
	AreaNLP,
}

// areaKeywords maps each tag to case-insensitive substring keywords.
// Matching is a plain substring check over the lower-cased CV text; no
// scoring, no stemming.
var areaKeywords = map[AreaTag][]string{
	AreaArtificialIntelligence: {"artificial intelligence", "machine learning", "deep learning", "neural network", "reinforcement learning", " ai ", " ml "},
	AreaComputerScience:        {"computer science", "algorithms", "data structures", "distributed systems", "operating systems"},
	AreaDataScience:            {"data science", "data analytics", "big data", "data mining", "statistics", "data analysis"},
	AreaCybersecurity:          {"cybersecurity", "cyber security", "network security", "cryptography", "information security"},
	AreaRobotics:               {"robotics", "robot", "autonomous systems", "control systems", "mechatronics"},
	AreaSoftwareEngineering:    {"software engineering", "software development", "devops", "software architecture"},
	AreaComputerVision:         {"computer vision", "image processing", "object detection", "image classification", "image segmentation"},
	AreaNLP:                    {"natural language processing", "nlp", "text mining", "language model", "sentiment analysis"},
}

// ExtractResearchAreas maps free-text CV content to taxonomy tags by
// keyword matching. Empty input yields an empty slice, not an error.
func ExtractResearchAreas(cvText string) []AreaTag {
	if strings.TrimSpace(cvText) == "" {
		return nil
	}
	// Pad so boundary-sensitive keywords like " ai " can match at the edges.
	lower := " " + strings.ToLower(cvText) + " "
	var areas []AreaTag
	for _, tag := range areaOrder {
		for _, kw := range areaKeywords[tag] {
			if strings.Contains(lower, kw) {
				areas = append(areas, tag)
				break
			}
		}
	}
	return areas
}
