package discovery

import (
	"reflect"
	"testing"
)

func TestExtractResearchAreas(t *testing.T) {
	tests := []struct {
		name   string
		cvText string
		want   []AreaTag
	}{
		{
			name:   "machine learning CV",
			cvText: "Built deep learning models for image classification using neural networks.",
			want:   []AreaTag{AreaArtificialIntelligence, AreaComputerVision},
		},
		{
			name:   "security CV",
			cvText: "Research on cryptography and network security protocols.",
			want:   []AreaTag{AreaCybersecurity},
		},
		{
			name:   "multi-area CV",
			cvText: "Experience in natural language processing, data mining, and distributed systems.",
			want:   []AreaTag{AreaComputerScience, AreaDataScience, AreaNLP},
		},
		{
			name:   "bare AI abbreviation",
			cvText: "Worked on AI products at a startup.",
			want:   []AreaTag{AreaArtificialIntelligence},
		},
		{
			name:   "abbreviation inside a word does not match",
			cvText: "Maintained email campaigns and sales brochures.",
			want:   nil,
		},
		{
			name:   "empty input",
			cvText: "   ",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractResearchAreas(tt.cvText)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractResearchAreas() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractResearchAreasDeterministicOrder(t *testing.T) {
	cv := "nlp robotics machine learning data science cybersecurity"
	first := ExtractResearchAreas(cv)
	for i := 0; i < 10; i++ {
		if got := ExtractResearchAreas(cv); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: got %v, want %v", i, got, first)
		}
	}
}
