package discovery

import "fmt"

// baseQueryTemplates are the broad faculty-directory queries issued for
// every run. Faculty listing pages are the most reliable organic-search
// anchor, so these run first and get first claim on the extraction budget.
var baseQueryTemplates = []string{
	"%s computer science faculty directory",
	"%s computer science department professors",
	"%s faculty research areas computer science",
	"%s professors machine learning artificial intelligence",
	"%s computer science faculty research interests",
	"%s department of computer science people",
	"%s CS faculty list",
	"%s computer science professors accepting PhD students",
	"%s faculty profiles computer science engineering",
	"%s computer science research labs faculty",
}

// areaQueryTemplates append precision queries per recognized area.
var areaQueryTemplates = map[AreaTag][]string{
	AreaArtificialIntelligence: {
		"%s professors artificial intelligence machine learning research",
		"%s faculty deep learning neural networks",
	},
	AreaComputerScience: {
		"%s computer science faculty systems algorithms",
		"%s professors theoretical computer science",
	},
	AreaDataScience: {
		"%s professors data science analytics research",
		"%s faculty big data data mining",
	},
	AreaCybersecurity: {
		"%s professors cybersecurity research",
		"%s faculty network security cryptography",
	},
	AreaRobotics: {
		"%s professors robotics research lab",
		"%s faculty autonomous systems robotics",
	},
	AreaSoftwareEngineering: {
		"%s professors software engineering research",
		"%s faculty software systems development",
	},
	AreaComputerVision: {
		"%s professors computer vision research",
		"%s faculty image processing computer vision lab",
	},
	AreaNLP: {
		"%s professors natural language processing research",
		"%s faculty NLP computational linguistics",
	},
}

// PlanQueries produces the ordered search plan for one university: the
// fixed base queries first (broad recall), then 2 area-specific queries
// per recognized area (precision).
func PlanQueries(university string, areas []AreaTag) []string {
	queries := make([]string, 0, len(baseQueryTemplates)+2*len(areas))
	for _, tmpl := range baseQueryTemplates {
		queries = append(queries, fmt.Sprintf(tmpl, university))
	}
	for _, area := range areas {
		for _, tmpl := range areaQueryTemplates[area] {
			queries = append(queries, fmt.Sprintf(tmpl, university))
		}
	}
	return queries
}
