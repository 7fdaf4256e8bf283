// Package snapshot loads scoring inputs from JSON files.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/scoring"
)

// LoadCandidate reads and validates a candidate profile.
func LoadCandidate(path string) (*scoring.Candidate, error) {
	var c scoring.Candidate
	if err := load("candidate", path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadJob reads and validates a job posting.
func LoadJob(path string) (*scoring.Job, error) {
	var j scoring.Job
	if err := load("job", path, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// LoadPlan reads and validates a mentorship plan.
func LoadPlan(path string) (*scoring.Plan, error) {
	var p scoring.Plan
	if err := load("plan", path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func load(schema, path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s snapshot: %w", schema, err)
	}
	if err := validate(schema, path, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Path: path, Schema: schema, Err: err}
	}
	return nil
}

// FileProvider supplies snapshots from JSON files. Application records
// read CandidatePath and JobPath; mentorship records read PlanPath.
type FileProvider struct {
	CandidatePath string
	JobPath       string
	PlanPath      string
}

var _ lifecycle.SnapshotProvider = FileProvider{}

// Snapshot loads the files rec's kind is scored from.
func (p FileProvider) Snapshot(_ context.Context, rec *lifecycle.Record) (scoring.Snapshot, error) {
	var snap scoring.Snapshot
	switch rec.Kind {
	case lifecycle.KindApplication:
		if p.CandidatePath == "" || p.JobPath == "" {
			return snap, fmt.Errorf("application %s needs candidate and job snapshots", rec.ID)
		}
		c, err := LoadCandidate(p.CandidatePath)
		if err != nil {
			return snap, err
		}
		j, err := LoadJob(p.JobPath)
		if err != nil {
			return snap, err
		}
		snap.Candidate, snap.Job = c, j
	case lifecycle.KindMentorship:
		if p.PlanPath == "" {
			return snap, fmt.Errorf("mentorship %s needs a plan snapshot", rec.ID)
		}
		plan, err := LoadPlan(p.PlanPath)
		if err != nil {
			return snap, err
		}
		snap.Plan = plan
	default:
		return snap, &lifecycle.UnknownKindError{Kind: rec.Kind}
	}
	return snap, nil
}
