package scoring

import "fmt"

// Candidate is a point-in-time copy of an applicant's profile.
type Candidate struct {
	ID              string      `json:"id"`
	Skills          []string    `json:"skills"`
	ExperienceYears float64     `json:"experience_years"`
	Education       []Education `json:"education"` // highest level first
	Location        Location    `json:"location"`
}

// Education is one entry of a candidate's education history.
type Education struct {
	Level       string `json:"level"`
	Institution string `json:"institution,omitempty"`
}

// Location is a coarse geographic position.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

// Job is a point-in-time copy of a job posting's requirements.
type Job struct {
	ID                 string   `json:"id"`
	RequiredSkills     []string `json:"required_skills"`
	MinExperienceYears float64  `json:"min_experience_years"`
	RequiredEducation  string   `json:"required_education,omitempty"`
	Location           Location `json:"location"`
	Remote             bool     `json:"remote"`
}

// Plan is a mentorship plan with ordered milestones.
type Plan struct {
	ID         string      `json:"id"`
	Milestones []Milestone `json:"milestones"`
}

// Milestone is one step of a mentorship plan.
type Milestone struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Snapshot bundles the inputs of one score computation. Application
// scoring reads Candidate and Job; mentorship scoring reads Plan.
type Snapshot struct {
	Candidate *Candidate
	Job       *Job
	Plan      *Plan
}

// InvalidSnapshotError indicates a snapshot without a required identity field.
type InvalidSnapshotError struct {
	Field string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: missing %s", e.Field)
}
