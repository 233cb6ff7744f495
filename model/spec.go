package model

// Specification is the immutable description of a generation goal. It is
// created once per orchestration run and never mutated afterwards; planners
// and schedulers only read from it.
type Specification struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Domain      Domain `json:"domain" yaml:"domain"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Output OutputContract `json:"output" yaml:"output"`

	// Dimensions lists the orthogonal creative axes the planner distributes
	// across assignments so that concurrent agents do not produce duplicates.
	Dimensions []string `json:"dimensions" yaml:"dimensions"`

	// Levels are consumed in ascending rank order across successive waves.
	Levels []SophisticationLevel `json:"levels" yaml:"levels"`

	SuccessCriteria []string `json:"successCriteria,omitempty" yaml:"successCriteria,omitempty"`
}

// OutputContract describes what every generated unit must look like.
type OutputContract struct {
	Format           string   `json:"format" yaml:"format"`
	NamingPattern    string   `json:"namingPattern,omitempty" yaml:"namingPattern,omitempty"`
	QualityStandards []string `json:"qualityStandards,omitempty" yaml:"qualityStandards,omitempty"`
}

// SophisticationLevel is a progressive quality/complexity tier. Rank starts
// at 1 and levels within a specification are sequential.
type SophisticationLevel struct {
	Rank                int      `json:"rank" yaml:"rank"`
	Name                string   `json:"name" yaml:"name"`
	InnovationTargets   []string `json:"innovationTargets,omitempty" yaml:"innovationTargets,omitempty"`
	QualityExpectations []string `json:"qualityExpectations,omitempty" yaml:"qualityExpectations,omitempty"`
}

// Level returns the level with the given rank, or the highest level when the
// rank exceeds the defined tiers (later waves stay at the top tier).
func (s *Specification) Level(rank int) SophisticationLevel {
	if len(s.Levels) == 0 {
		return SophisticationLevel{Rank: rank}
	}
	for i := range s.Levels {
		if s.Levels[i].Rank == rank {
			return s.Levels[i]
		}
	}
	return s.Levels[len(s.Levels)-1]
}

// Summary renders a one-paragraph description used as assignment context.
func (s *Specification) Summary() string {
	if s.Description != "" {
		return s.Name + ": " + s.Description
	}
	return s.Name
}
