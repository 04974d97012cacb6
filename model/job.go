package model

import (
	"fmt"
	"time"
)

type JobStatus string

const (
	JOB_PENDING   JobStatus = "pending"
	JOB_RUNNING   JobStatus = "running"
	JOB_COMPLETED JobStatus = "completed"
	JOB_FAILED    JobStatus = "failed"
)

func (s JobStatus) IsTerminal() bool {
	return s == JOB_COMPLETED || s == JOB_FAILED
}

// CanTransition reports whether a job may move from s to next.
// The only legal paths are pending -> running -> completed|failed, plus
// pending -> failed for a job cancelled before it started.
func (s JobStatus) CanTransition(next JobStatus) bool {
	switch s {
	case JOB_PENDING:
		return next == JOB_RUNNING || next == JOB_FAILED
	case JOB_RUNNING:
		return next == JOB_COMPLETED || next == JOB_FAILED
	default:
		return false
	}
}

// Job is an asynchronous analysis run for one league and season.
type Job struct {
	ID       string    `json:"id"`
	LeagueID string    `json:"leagueId"`
	Season   string    `json:"season"`
	Status   JobStatus `json:"status"`
	Progress float64   `json:"progress"`
	Stage    string    `json:"stage,omitempty"`
	Cause    string    `json:"cause,omitempty"`
	Warnings int       `json:"warnings"`
	Created  time.Time `json:"created"`
	Started  time.Time `json:"started,omitempty"`
	Finished time.Time `json:"finished,omitempty"`
}

// Transition moves the job to the next status or returns an error if the move
// is not allowed.
func (j *Job) Transition(next JobStatus, now time.Time) error {
	if !j.Status.CanTransition(next) {
		return fmt.Errorf("invalid job transition from %s to %s", j.Status, next)
	}
	j.Status = next
	switch next {
	case JOB_RUNNING:
		j.Started = now
	case JOB_COMPLETED:
		j.Progress = 1
		j.Finished = now
	case JOB_FAILED:
		j.Finished = now
	}
	return nil
}
