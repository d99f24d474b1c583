package project

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/modlens/modlens/pkg/analysis"
	"github.com/modlens/modlens/pkg/restree"
)

// Project is the configuration source the results tree consumes: it owns
// the currently loaded analysis results, persists issue mutations through
// the Store, and notifies subscribers about configuration changes.
type Project struct {
	name    string
	results *analysis.Results
	store   *Store

	changed       []func(restree.Change)
	resultsLoaded []func()
}

// NewProject creates a project configuration backed by the given store.
// The store may be nil for transient sessions; mutations then only touch
// the in-memory results.
func NewProject(name string, store *Store) *Project {
	return &Project{name: name, store: store}
}

// Name returns the configuration's display name.
func (p *Project) Name() string {
	return p.name
}

// SetName renames the project and notifies subscribers.
func (p *Project) SetName(name string) {
	if name == p.name {
		return
	}
	p.name = name
	p.emitChanged(restree.Change{Type: restree.ChangeName, Name: name})
}

// Results returns the loaded analysis run, or nil when absent.
func (p *Project) Results() *analysis.Results {
	return p.results
}

// OnChanged subscribes to configuration change records.
func (p *Project) OnChanged(fn func(restree.Change)) {
	p.changed = append(p.changed, fn)
}

// OnResultsLoaded subscribes to results-loaded events.
func (p *Project) OnResultsLoaded(fn func()) {
	p.resultsLoaded = append(p.resultsLoaded, fn)
}

// LoadResults replaces the loaded run and fires the results-loaded event.
// Previously persisted issue states are applied first: deleted issues are
// dropped, complete ones flagged.
func (p *Project) LoadResults(results *analysis.Results) error {
	if results != nil && p.store != nil {
		if err := p.applyStoredStates(results); err != nil {
			return fmt.Errorf("apply stored issue states: %w", err)
		}
	}
	p.results = results
	p.emitResultsLoaded()
	return nil
}

// LoadResultsFile reads an analysis results file and loads it.
func (p *Project) LoadResultsFile(path string) error {
	results, err := analysis.LoadFile(path)
	if err != nil {
		return err
	}
	return p.LoadResults(results)
}

// ClearResults drops the loaded run and fires the results-loaded event so
// the tree re-enters its unloaded state.
func (p *Project) ClearResults() {
	p.results = nil
	p.emitResultsLoaded()
}

// DeleteIssue persists the deletion and removes the issue from the run.
func (p *Project) DeleteIssue(iss *analysis.Issue) error {
	if p.store != nil {
		if err := p.store.MarkDeleted(p.name, iss.ID, iss.File); err != nil {
			return fmt.Errorf("persist deletion: %w", err)
		}
	}
	if p.results != nil {
		p.results.Remove(iss)
	}
	return nil
}

// MarkIssueAsComplete flags the issue complete and persists the flag. The
// issue stays part of the run.
func (p *Project) MarkIssueAsComplete(iss *analysis.Issue) error {
	if p.store != nil {
		if err := p.store.MarkComplete(p.name, iss.ID, iss.File); err != nil {
			return fmt.Errorf("persist completion: %w", err)
		}
	}
	iss.Complete = true
	return nil
}

// Report renders a per-file summary of the loaded run.
func (p *Project) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analysis report: %s\n", p.name)

	if p.results == nil {
		sb.WriteString("No results loaded.\n")
		return sb.String()
	}

	type fileSummary struct {
		classifications int
		hints           int
		complete        int
	}
	summaries := make(map[string]*fileSummary)
	summaryFor := func(file string) *fileSummary {
		if s, ok := summaries[file]; ok {
			return s
		}
		s := &fileSummary{}
		summaries[file] = s
		return s
	}

	for _, iss := range p.results.Classifications {
		s := summaryFor(iss.File)
		s.classifications++
		if iss.Complete {
			s.complete++
		}
	}
	for _, iss := range p.results.Hints {
		s := summaryFor(iss.File)
		s.hints++
		if iss.Complete {
			s.complete++
		}
	}

	files := make([]string, 0, len(summaries))
	for file := range summaries {
		files = append(files, file)
	}
	sort.Strings(files)

	fmt.Fprintf(&sb, "%d classifications, %d hints across %d files\n\n",
		len(p.results.Classifications), len(p.results.Hints), len(files))

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tCLASSIFICATIONS\tHINTS\tCOMPLETE")
	for _, file := range files {
		s := summaries[file]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", file, s.classifications, s.hints, s.complete)
	}
	w.Flush()

	return sb.String()
}

// applyStoredStates filters deleted issues out of the run and flags
// complete ones, based on what the store remembers for this project.
func (p *Project) applyStoredStates(results *analysis.Results) error {
	states, err := p.store.States(p.name)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return nil
	}

	results.Classifications = applyStates(results.Classifications, states)
	results.Hints = applyStates(results.Hints, states)
	return nil
}

func applyStates(issues []*analysis.Issue, states map[string]string) []*analysis.Issue {
	kept := issues[:0]
	for _, iss := range issues {
		switch states[iss.ID] {
		case stateDeleted:
			continue
		case stateComplete:
			iss.Complete = true
		}
		kept = append(kept, iss)
	}
	return kept
}

func (p *Project) emitChanged(change restree.Change) {
	for _, fn := range p.changed {
		fn(change)
	}
}

func (p *Project) emitResultsLoaded() {
	for _, fn := range p.resultsLoaded {
		fn()
	}
}
