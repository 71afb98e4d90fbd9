// Package app owns the per-session runtime: loading sessions through the
// collaborator, keeping one engine per open session and exposing load
// progress as an event stream for the push channel.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/changes"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/session"
)

type SessionEventType string

const (
	EventPreparing SessionEventType = "preparing"
	EventProgress  SessionEventType = "progress"
	EventReady     SessionEventType = "ready"
	EventError     SessionEventType = "error"
)

// SessionEvent is one step of a session load, pushed over the progress
// websocket.
type SessionEvent struct {
	JobID     string           `json:"job_id"`
	SessionID string           `json:"session_id"`
	Type      SessionEventType `json:"type"`
	HadBackup bool             `json:"had_backup,omitempty"`
	Error     string           `json:"error,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

// LoadJob tracks one asynchronous session load.
type LoadJob struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Status    JobStatus         `json:"status"`
	Error     string            `json:"error,omitempty"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
	Events    chan SessionEvent `json:"-"`
}

// Orchestrator ties config, collaborator client, backup store and the open
// session engines together.
type Orchestrator struct {
	cfg    *Config
	store  interfaces.SessionStore
	client interfaces.ResultsClient
	loader *session.Loader
	logger logging.Logger

	mu         sync.Mutex
	engines    map[string]*Engine
	jobs       map[string]*LoadJob
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator wires an orchestrator. store may be nil to run without
// durable backups.
func NewOrchestrator(cfg *Config, store interfaces.SessionStore, client interfaces.ResultsClient, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("Orchestrator")
	}
	loader := session.NewLoader(cfg.SessionCfg, client, store, logger)
	loader.TrackerCfg = &changes.Config{BackupMaxAge: cfg.BackupMaxAge}

	return &Orchestrator{
		cfg:        cfg,
		store:      store,
		client:     client,
		loader:     loader,
		logger:     logger,
		engines:    make(map[string]*Engine),
		jobs:       make(map[string]*LoadJob),
		jobCancels: make(map[string]context.CancelFunc),
	}
}

// Engine returns the open engine for a session, or nil.
func (o *Orchestrator) Engine(sessionID string) *Engine {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.engines[sessionID]
}

// OpenSession loads a session synchronously and returns its engine. An
// already open session is returned as is.
func (o *Orchestrator) OpenSession(ctx context.Context, sessionID string) (*Engine, error) {
	if e := o.Engine(sessionID); e != nil {
		return e, nil
	}

	tracker, _, err := o.loader.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	return o.registerEngine(sessionID, tracker)
}

func (o *Orchestrator) registerEngine(sessionID string, tracker *changes.Tracker) (*Engine, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if existing, ok := o.engines[sessionID]; ok {
		// Lost the race against a concurrent open; keep the first engine.
		return existing, nil
	}
	e, err := newEngine(sessionID, tracker,
		o.cfg.PlaybackCfg, o.logger.With(logging.Field{Key: "session", Value: sessionID}))
	if err != nil {
		return nil, err
	}
	o.engines[sessionID] = e
	return e, nil
}

// StartLoadJob kicks off an asynchronous session load and returns the job
// whose Events channel streams preparing/progress/ready/error.
func (o *Orchestrator) StartLoadJob(ctx context.Context, sessionID string) *LoadJob {
	jobID := uuid.New().String()
	job := &LoadJob{
		ID:        jobID,
		SessionID: sessionID,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
		Events:    make(chan SessionEvent, 16),
	}

	jobCtx, cancel := context.WithCancel(ctx)
	o.mu.Lock()
	o.pruneJobsLocked(time.Now())
	o.jobs[jobID] = job
	o.jobCancels[jobID] = cancel
	o.mu.Unlock()

	o.emit(job, SessionEvent{Type: EventPreparing})

	go func() {
		defer func() {
			o.mu.Lock()
			job.EndedAt = time.Now().UTC()
			delete(o.jobCancels, jobID)
			o.mu.Unlock()
			close(job.Events)
		}()

		o.setStatus(job, JobRunning, "")

		tracker, hadBackup, err := o.loader.Load(jobCtx, sessionID)
		if err != nil {
			msg := err.Error()
			if jobCtx.Err() != nil {
				msg = jobCtx.Err().Error()
				o.setStatus(job, JobCanceled, msg)
			} else {
				o.setStatus(job, JobFailed, msg)
			}
			o.emit(job, SessionEvent{Type: EventError, Error: msg})
			return
		}

		o.emit(job, SessionEvent{Type: EventProgress, HadBackup: hadBackup})

		if _, err := o.registerEngine(sessionID, tracker); err != nil {
			o.setStatus(job, JobFailed, err.Error())
			o.emit(job, SessionEvent{Type: EventError, Error: err.Error()})
			return
		}
		o.setStatus(job, JobDone, "")
		o.emit(job, SessionEvent{Type: EventReady, HadBackup: hadBackup})
	}()

	return job
}

// GetJob returns a point-in-time copy of a load job, or nil. The copy
// carries no Events channel; stream consumers hold the job returned by
// StartLoadJob.
func (o *Orchestrator) GetJob(jobID string) *LoadJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	job, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	snap := *job
	snap.Events = nil
	return &snap
}

// pruneJobsLocked drops finished jobs past the retention window. Callers
// hold o.mu.
func (o *Orchestrator) pruneJobsLocked(now time.Time) {
	retention := o.cfg.JobRetention
	if retention <= 0 {
		retention = time.Hour
	}
	for id, j := range o.jobs {
		if j.EndedAt.IsZero() {
			continue
		}
		if now.Sub(j.EndedAt) >= retention {
			delete(o.jobs, id)
		}
	}
}

// CancelJob aborts a running load job.
func (o *Orchestrator) CancelJob(jobID string) {
	o.mu.Lock()
	cancel := o.jobCancels[jobID]
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// CloseSession tears down a session's engine. Unsaved changes stay in the
// durable backup for the next load.
func (o *Orchestrator) CloseSession(sessionID string) {
	o.mu.Lock()
	e := o.engines[sessionID]
	delete(o.engines, sessionID)
	o.mu.Unlock()
	if e != nil {
		e.Close()
	}
}

// Close tears down all engines and the backup store.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	engines := o.engines
	o.engines = make(map[string]*Engine)
	o.mu.Unlock()

	for _, e := range engines {
		e.Close()
	}
	if o.store != nil {
		if err := o.store.Close(); err != nil {
			o.logger.Warn("closing backup store", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

func (o *Orchestrator) setStatus(job *LoadJob, status JobStatus, errMsg string) {
	o.mu.Lock()
	job.Status = status
	job.Error = errMsg
	o.mu.Unlock()
}

// emit is a non-blocking event send; slow consumers drop events.
func (o *Orchestrator) emit(job *LoadJob, ev SessionEvent) {
	ev.JobID = job.ID
	ev.SessionID = job.SessionID
	select {
	case job.Events <- ev:
	default:
	}
}
