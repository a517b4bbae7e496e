package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/repository"

	"github.com/google/uuid"
)

var ErrNoMessage = errors.New("no message provided")

const (
	defaultWindowDays      = 30
	defaultMinMentions     = 2
	defaultSearchLimit     = 20
	defaultClusterMinEdges = 2
)

// TrendAnalyzer is the analysis collaborator.
type TrendAnalyzer interface {
	ComputeSnapshot(ctx context.Context, windowEnd time.Time, windowDays, minMentions int) (trend.Snapshot, error)
	Latest(ctx context.Context) (trend.Snapshot, bool)
}

// JobSearcher is the job store surface the agent queries directly.
type JobSearcher interface {
	ListFiltered(ctx context.Context, f repository.JobFilter) ([]job.Posting, error)
	Stats(ctx context.Context) (repository.JobStats, error)
}

// ScrapeResult summarizes one ingestion run.
type ScrapeResult struct {
	FeedsProcessed int
	TotalFetched   int
	JobsAdded      int
}

// ScrapeTrigger kicks off one ingestion run. Duplicate postings are
// deduplicated by the store, not here.
type ScrapeTrigger interface {
	Ingest(ctx context.Context) (ScrapeResult, error)
}

// Agent routes protocol requests into intents, drives each request through
// the task lifecycle and composes structured responses. Collaborators are
// injected at construction so the agent is testable with fakes.
type Agent struct {
	analyzer TrendAnalyzer
	jobs     JobSearcher
	scraper  ScrapeTrigger
	contexts *ContextStore
	logger   *log.Logger
	now      func() time.Time
}

func New(analyzer TrendAnalyzer, jobs JobSearcher, scraper ScrapeTrigger, logger *log.Logger) *Agent {
	return &Agent{
		analyzer: analyzer,
		jobs:     jobs,
		scraper:  scraper,
		contexts: NewContextStore(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ProcessMessages accepts one protocol request and runs it to a terminal
// task. Business failures surface as a failed task carrying a readable
// agent message, never as an error from this method; the only error is a
// request without any message to act on.
func (a *Agent) ProcessMessages(ctx context.Context, messages []Message, contextID, taskID string) (*Task, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessage
	}
	if contextID == "" {
		contextID = uuid.NewString()
	}
	if taskID == "" {
		taskID = uuid.NewString()
	}

	input := messages[len(messages)-1]

	conv := a.contexts.GetOrCreate(contextID)
	conv.Lock()
	defer conv.Unlock()

	conv.Append(input)

	task := NewTask(taskID, contextID, input)
	conv.BindTask(task.ID)

	if err := task.Transition(TaskStateWorking); err != nil {
		return nil, err
	}

	intent := ClassifyIntent(input.Text())
	if intent == IntentUnknown {
		if last := conv.LastTopic(); last != "" {
			intent = last
		}
	}
	if a.logger != nil {
		a.logger.Printf("[Agent] Dispatching | context=%s task=%s intent=%s", contextID, taskID, intent)
	}

	text, artifacts, err := a.dispatch(ctx, intent)
	if err != nil {
		msg := NewAgentMessage(task.ID, TextPart(fmt.Sprintf("Error: %v", err)))
		if ferr := task.Fail(msg); ferr != nil {
			return nil, ferr
		}
		conv.Append(msg)
		return task, nil
	}

	msg := NewAgentMessage(task.ID, TextPart(text))
	if cerr := task.Complete(msg, artifacts); cerr != nil {
		return nil, cerr
	}
	conv.Append(msg)
	conv.RememberTopic(intent)
	return task, nil
}

// History returns the conversation's message log, or false when the
// context has never been seen.
func (a *Agent) History(contextID string) ([]Message, bool) {
	conv, ok := a.contexts.Get(contextID)
	if !ok {
		return nil, false
	}
	conv.Lock()
	defer conv.Unlock()
	return conv.Messages(), true
}

// dispatch invokes the collaborator mapped to the intent. Each dispatch is
// one logical operation; shared state is never partially mutated.
func (a *Agent) dispatch(ctx context.Context, intent Intent) (string, []Artifact, error) {
	switch intent {
	case IntentStats:
		stats, err := a.jobs.Stats(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("fetching statistics: %w", err)
		}
		text, artifact := ComposeStats(stats)
		return text, []Artifact{artifact}, nil

	case IntentTrendingSkills:
		snap, err := a.currentSnapshot(ctx)
		if err != nil {
			return "", nil, err
		}
		text, artifact := ComposeTrendingSkills(snap)
		return text, []Artifact{artifact}, nil

	case IntentTrendingRoles:
		snap, err := a.currentSnapshot(ctx)
		if err != nil {
			return "", nil, err
		}
		text, artifact := ComposeTrendingRoles(snap)
		return text, []Artifact{artifact}, nil

	case IntentLatestAnalysis:
		snap, ok := a.analyzer.Latest(ctx)
		if !ok {
			return "No analysis available yet. Run 'analyze trends' first.", nil, nil
		}
		text, artifact := ComposeLatestAnalysis(snap)
		return text, []Artifact{artifact}, nil

	case IntentSearchJobs:
		postings, err := a.jobs.ListFiltered(ctx, repository.JobFilter{Limit: defaultSearchLimit})
		if err != nil {
			return "", nil, fmt.Errorf("searching jobs: %w", err)
		}
		text, artifact := ComposeJobSearch(postings)
		return text, []Artifact{artifact}, nil

	case IntentTriggerScrape:
		result, err := a.scraper.Ingest(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("scraping jobs: %w", err)
		}
		text, artifact := ComposeScrapeResult(result)
		return text, []Artifact{artifact}, nil

	case IntentTriggerAnalyze:
		snap, err := a.analyzer.ComputeSnapshot(ctx, a.now(), defaultWindowDays, defaultMinMentions)
		if err != nil {
			return "", nil, fmt.Errorf("running analysis: %w", err)
		}
		text, artifact := ComposeAnalysisResult(snap)
		return text, []Artifact{artifact}, nil

	default:
		text := HelpText()
		return text, []Artifact{TextArtifact("help", text)}, nil
	}
}

// currentSnapshot serves trend queries from the latest analysis, computing
// a fresh one when no history exists yet.
func (a *Agent) currentSnapshot(ctx context.Context) (trend.Snapshot, error) {
	if snap, ok := a.analyzer.Latest(ctx); ok {
		return snap, nil
	}
	snap, err := a.analyzer.ComputeSnapshot(ctx, a.now(), defaultWindowDays, defaultMinMentions)
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("computing trends: %w", err)
	}
	return snap, nil
}
