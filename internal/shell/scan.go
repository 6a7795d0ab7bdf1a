package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Stage is a phase of the vulnerability scan.
type Stage string

const (
	StagePortScan         Stage = "PORT_SCAN"
	StageServiceDiscovery Stage = "SERVICE_DISCOVERY"
	StageVulnMatching     Stage = "VULN_MATCHING"
	StageReportGen        Stage = "REPORT_GEN"
)

const (
	scanStep = 2
	scanTick = 30 * time.Millisecond
)

// ScanState is the progress of a scan. Progress is clamped to [0, 100].
type ScanState struct {
	Progress int
	Stage    Stage
}

func stageFor(progress int) Stage {
	switch {
	case progress >= 100:
		return StageReportGen
	case progress > 70:
		return StageVulnMatching
	case progress > 30:
		return StageServiceDiscovery
	default:
		return StagePortScan
	}
}

// Next advances the state by one tick. The terminal state is a fixed point.
func (st ScanState) Next() ScanState {
	p := st.Progress + scanStep
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return ScanState{Progress: p, Stage: stageFor(p)}
}

// Done reports whether the scan reached the report stage.
func (st ScanState) Done() bool { return st.Progress >= 100 }

// Vulnerability is one row of the scan report.
type Vulnerability struct {
	ID          string
	Severity    string
	Description string
}

// Scan is the animated vulnerability scan shown by the scan command.
type Scan struct {
	Target string

	vulns []Vulnerability

	mu    sync.Mutex
	state ScanState
	done  chan struct{}
	once  sync.Once
}

// NewScan creates a scan of target that reports vulns when finished.
func NewScan(target string, vulns []Vulnerability) *Scan {
	return &Scan{
		Target: target,
		vulns:  vulns,
		state:  ScanState{Stage: StagePortScan},
		done:   make(chan struct{}),
	}
}

// Run advances the scan every tick until it reaches the report stage.
func (s *Scan) Run(ctx context.Context, scale float64) {
	defer s.once.Do(func() { close(s.done) })

	tick := scaleDuration(scanTick, scale)
	if tick <= 0 {
		for !s.advance() {
			if ctx.Err() != nil {
				return
			}
		}
		return
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.advance() {
				return
			}
		}
	}
}

func (s *Scan) advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Next()
	return s.state.Done()
}

// Done is closed when the scan stops changing.
func (s *Scan) Done() <-chan struct{} { return s.done }

// State returns the current scan state.
func (s *Scan) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Report returns the findings table.
func (s *Scan) Report() Table {
	t := Table{
		Title:   "VULNERABILITY REPORT",
		Badge:   "CRITICAL",
		Columns: []string{"CVE", "SEVERITY", "DESC"},
	}
	for _, v := range s.vulns {
		t.Rows = append(t.Rows, []string{v.ID, v.Severity, v.Description})
	}
	return t
}

// Bar renders the progress bar for progress in [0, 100].
func Bar(progress, width int) string {
	filled := progress * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func (s *Scan) String() string {
	st := s.State()
	if st.Done() {
		return s.Report().String()
	}
	return fmt.Sprintf("TARGET: %s\nSTATUS: %s... %d%%\n%s",
		s.Target, strings.ReplaceAll(string(st.Stage), "_", " "), st.Progress, Bar(st.Progress, 20))
}
