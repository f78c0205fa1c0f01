package orchestrate

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/storage"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Exit statuses of an in-place run
const (
	StatusSuccess = 0
	StatusFailure = 1
	StatusChanged = 99
)

// FileResult contains the result of processing a single document in place
type FileResult struct {
	Path     string
	Status   models.FileStatus
	Input    string // Content before processing
	Output   string // Content after processing (equal to Input unless changed)
	Error    error
	Duration time.Duration
}

// Changed reports whether the document was rewritten
func (r FileResult) Changed() bool {
	return r.Status == models.FileStatusChanged
}

// Orchestrator updates the TOC of several documents in place, in parallel
type Orchestrator struct {
	processor   *process.ContentProcessor
	store       storage.DocumentStore // nil = no state
	fingerprint string
	log         *logrus.Entry
	sem         *semaphore.Weighted
}

// NewOrchestrator creates an orchestrator running at most jobs documents at
// once. store may be nil.
func NewOrchestrator(processor *process.ContentProcessor, store storage.DocumentStore, jobs int, log *logrus.Entry) *Orchestrator {
	if jobs <= 0 {
		jobs = 1
	}
	return &Orchestrator{
		processor:   processor,
		store:       store,
		fingerprint: processor.Fingerprint(),
		log:         log.WithField("component", "orchestrator"),
		sem:         semaphore.NewWeighted(int64(jobs)),
	}
}

// Run processes every path and returns the results in input order. A
// failing document never stops the others.
func (o *Orchestrator) Run(ctx context.Context, paths []string) []FileResult {
	startTime := time.Now()
	o.log.Debugf("Processing %d documents", len(paths))

	results := make([]FileResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			results[i] = FileResult{Path: path, Status: models.FileStatusFailure, Error: err}
			continue
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer o.sem.Release(1)
			results[i] = o.ProcessFile(ctx, path)
		}(i, path)
	}

	wg.Wait()
	o.logSummary(results, time.Since(startTime))
	return results
}

// ProcessFile updates one document in place
func (o *Orchestrator) ProcessFile(ctx context.Context, path string) FileResult {
	startTime := time.Now()
	result := FileResult{Path: path}
	taskLog := o.log.WithField("file", path)
	key := process.NormalizePath(path)

	finish := func(status models.FileStatus, err error) FileResult {
		result.Status = status
		result.Error = err
		result.Duration = time.Since(startTime)
		if err != nil {
			taskLog.WithField("error_type", utils.CategorizeError(err)).Debugf("Failed: %v", err)
		}
		o.record(key, result)
		return result
	}

	if err := ctx.Err(); err != nil {
		return finish(models.FileStatusFailure, err)
	}

	input, err := process.ReadFile(path)
	if err != nil {
		return finish(models.FileStatusFailure, err)
	}
	result.Input = input
	result.Output = input

	if o.upToDate(key, input, taskLog) {
		result.Status = models.FileStatusSkipped
		result.Duration = time.Since(startTime)
		return result
	}

	output, err := o.processor.ProcessText(path, input)
	if err != nil {
		return finish(models.FileStatusFailure, err)
	}
	if output == input {
		return finish(models.FileStatusUnchanged, nil)
	}

	if err := process.WriteFile(path, output); err != nil {
		return finish(models.FileStatusFailure, err)
	}
	result.Output = output
	taskLog.Infof("Updated TOC (%d -> %d bytes)", len(input), len(output))
	return finish(models.FileStatusChanged, nil)
}

// upToDate reports whether input is exactly what this orchestrator's
// settings last wrote for the document
func (o *Orchestrator) upToDate(key, input string, taskLog *logrus.Entry) bool {
	if o.store == nil {
		return false
	}
	status, entry, err := o.store.GetDocumentEntry(key)
	if err != nil {
		taskLog.Warnf("State lookup failed, processing anyway: %v", err)
		return false
	}
	if status == models.FileStatusNotFound || entry == nil || status == models.FileStatusFailure {
		return false
	}
	return entry.Fingerprint == o.fingerprint && entry.OutputHash == utils.CalculateStringSHA256(input)
}

// record stores the outcome of a processed document
func (o *Orchestrator) record(key string, result FileResult) {
	if o.store == nil {
		return
	}
	now := time.Now()
	entry := &models.DocumentEntry{
		Status:      result.Status,
		Fingerprint: o.fingerprint,
		LastAttempt: now,
	}
	if result.Error != nil {
		entry.ErrorType = utils.CategorizeError(result.Error)
	} else {
		entry.OutputHash = utils.CalculateStringSHA256(result.Output)
		entry.ProcessedAt = now
	}
	if err := o.store.UpdateDocumentEntry(key, entry); err != nil {
		o.log.WithField("file", result.Path).Warnf("Failed to record state: %v", err)
	}
}

// logSummary logs a summary of all results
func (o *Orchestrator) logSummary(results []FileResult, totalDuration time.Duration) {
	counts := make(map[models.FileStatus]int)
	for _, r := range results {
		counts[r.Status]++
		o.log.Debugf("  %s: %s in %v", r.Path, r.Status, r.Duration)
	}
	o.log.Infof("Processed %d documents in %v (%d changed, %d unchanged, %d skipped, %d failed)",
		len(results), totalDuration.Round(time.Millisecond),
		counts[models.FileStatusChanged], counts[models.FileStatusUnchanged],
		counts[models.FileStatusSkipped], counts[models.FileStatusFailure])
}

// AggregateStatus folds per-document results into an exit status. Any
// failure wins; otherwise a change gives StatusChanged when reportChanges
// is set.
func AggregateStatus(results []FileResult, reportChanges bool) int {
	status := StatusSuccess
	for _, r := range results {
		switch {
		case r.Status == models.FileStatusFailure:
			return StatusFailure
		case r.Changed() && reportChanges:
			status = StatusChanged
		}
	}
	return status
}

// Failures returns the errors of failed results in input order. Each error
// already names its file.
func Failures(results []FileResult) []error {
	var errs []error
	for _, r := range results {
		if r.Status == models.FileStatusFailure {
			errs = append(errs, r.Error)
		}
	}
	return errs
}
