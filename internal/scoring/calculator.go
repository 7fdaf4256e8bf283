package scoring

import (
	"math"
	"strings"
)

// Dimension names reported in Result.Dimensions.
const (
	DimSkills     = "skills"
	DimExperience = "experience"
	DimEducation  = "education"
	DimLocation   = "location"
	DimProgress   = "progress"
)

// Application match weights. They sum to 1.
const (
	WeightSkills     = 0.4
	WeightExperience = 0.3
	WeightEducation  = 0.2
	WeightLocation   = 0.1
)

// mismatchedEducation and foreignLocation are the partial credits given
// when the candidate has data that does not satisfy the requirement.
const (
	mismatchedEducation = 50.0
	foreignLocation     = 30.0
)

// Result is a computed score on a 0-100 scale.
type Result struct {
	Overall    int            `json:"overall"`
	Dimensions map[string]int `json:"dimensions"`
}

// Calculator computes a deterministic score from a snapshot.
type Calculator interface {
	Compute(snap Snapshot) (Result, error)
}

// ApplicationCalculator scores a candidate against a job's requirements.
type ApplicationCalculator struct{}

// Compute returns the weighted match of snap.Candidate against snap.Job.
// Optional fields that are absent contribute zero rather than failing.
func (ApplicationCalculator) Compute(snap Snapshot) (Result, error) {
	if snap.Candidate == nil || snap.Candidate.ID == "" {
		return Result{}, &InvalidSnapshotError{Field: "candidate.id"}
	}
	if snap.Job == nil || snap.Job.ID == "" {
		return Result{}, &InvalidSnapshotError{Field: "job.id"}
	}
	c, j := snap.Candidate, snap.Job

	skills := SkillsMatch(c.Skills, j.RequiredSkills)
	experience := ExperienceMatch(c.ExperienceYears, j.MinExperienceYears)
	education := EducationMatch(topEducation(c), j.RequiredEducation)
	location := LocationMatch(c.Location.Country, j.Location.Country, j.Remote)

	overall := skills*WeightSkills + experience*WeightExperience +
		education*WeightEducation + location*WeightLocation

	return Result{
		Overall: round(overall),
		Dimensions: map[string]int{
			DimSkills:     round(skills),
			DimExperience: round(experience),
			DimEducation:  round(education),
			DimLocation:   round(location),
		},
	}, nil
}

// SkillsMatch returns the percentage of required skills the candidate
// has, compared case-insensitively. No required skills scores 0.
func SkillsMatch(have, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	owned := make(map[string]bool, len(have))
	for _, s := range have {
		owned[normalize(s)] = true
	}
	matched := 0
	for _, s := range required {
		if owned[normalize(s)] {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100
}

// ExperienceMatch returns the candidate's experience as a percentage of
// the job minimum, clamped to [0, 100]. A zero minimum is always satisfied.
func ExperienceMatch(years, minYears float64) float64 {
	if minYears <= 0 {
		return 100
	}
	return math.Max(0, math.Min(years/minYears*100, 100))
}

// EducationMatch compares the candidate's top education level with the
// job's requirement. top is empty when the candidate has no education
// on file.
func EducationMatch(top, required string) float64 {
	req := normalize(required)
	if req == "" || req == "any" {
		return 100
	}
	if normalize(top) == "" {
		return 0
	}
	if strings.Contains(normalize(top), req) {
		return 100
	}
	return mismatchedEducation
}

// LocationMatch compares countries unless the job is remote.
func LocationMatch(candidateCountry, jobCountry string, remote bool) float64 {
	if remote {
		return 100
	}
	cc, jc := normalize(candidateCountry), normalize(jobCountry)
	if cc == "" || jc == "" {
		return 0
	}
	if cc == jc {
		return 100
	}
	return foreignLocation
}

// MentorshipCalculator scores a mentorship by milestone completion.
type MentorshipCalculator struct{}

// Compute returns the percentage of completed milestones in snap.Plan.
func (MentorshipCalculator) Compute(snap Snapshot) (Result, error) {
	if snap.Plan == nil || snap.Plan.ID == "" {
		return Result{}, &InvalidSnapshotError{Field: "plan.id"}
	}
	progress := Progress(snap.Plan.Milestones)
	return Result{
		Overall:    progress,
		Dimensions: map[string]int{DimProgress: progress},
	}, nil
}

// Progress returns round(100 * completed / total), or 0 without milestones.
func Progress(milestones []Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return round(100 * float64(done) / float64(len(milestones)))
}

func topEducation(c *Candidate) string {
	if len(c.Education) == 0 {
		return ""
	}
	return c.Education[0].Level
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round(v float64) int {
	return int(math.Round(v))
}
