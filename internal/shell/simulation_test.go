package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanStateMachine(t *testing.T) {
	tests := []struct {
		from ScanState
		want ScanState
	}{
		{ScanState{0, StagePortScan}, ScanState{2, StagePortScan}},
		{ScanState{28, StagePortScan}, ScanState{30, StagePortScan}},
		{ScanState{30, StagePortScan}, ScanState{32, StageServiceDiscovery}},
		{ScanState{70, StageServiceDiscovery}, ScanState{72, StageVulnMatching}},
		{ScanState{98, StageVulnMatching}, ScanState{100, StageReportGen}},
		{ScanState{99, StageVulnMatching}, ScanState{100, StageReportGen}},
		{ScanState{100, StageReportGen}, ScanState{100, StageReportGen}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.Next(), "from %v", tt.from)
	}
	assert.True(t, ScanState{100, StageReportGen}.Done())
}

func TestScanMonotonic(t *testing.T) {
	order := map[Stage]int{StagePortScan: 0, StageServiceDiscovery: 1, StageVulnMatching: 2, StageReportGen: 3}
	st := ScanState{Stage: StagePortScan}
	for i := 0; i < 60; i++ {
		next := st.Next()
		assert.GreaterOrEqual(t, next.Progress, st.Progress)
		assert.LessOrEqual(t, next.Progress, 100)
		assert.GreaterOrEqual(t, order[next.Stage], order[st.Stage])
		st = next
	}
	assert.Equal(t, StageReportGen, st.Stage)
}

func TestScanCommand(t *testing.T) {
	h := newHarness(t)
	h.run(t, "scan 10.0.0.7")

	scan, ok := h.last(t).Output.(*Scan)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.7", scan.Target)
	h.settle(t)

	assert.True(t, scan.State().Done())
	report := scan.Report()
	assert.Equal(t, "VULNERABILITY REPORT", report.Title)
	assert.Equal(t, "CRITICAL", report.Badge)
	assert.Equal(t, []string{"CVE", "SEVERITY", "DESC"}, report.Columns)
	require.Len(t, report.Rows, 4)
	assert.Equal(t, []string{"CVE-2025-9001", "CRITICAL", "Remote Code Execution in Legacy Resume Parser"}, report.Rows[0])
	assert.Contains(t, scan.String(), "VULNERABILITY REPORT")
}

func TestScanDefaultTarget(t *testing.T) {
	h := newHarness(t)
	h.run(t, "scan")
	assert.Equal(t, defaultScanTarget, h.last(t).Output.(*Scan).Target)
}

func TestScanRendersProgress(t *testing.T) {
	scan := NewScan("host", Vulnerabilities)
	assert.Equal(t, "TARGET: host\nSTATUS: PORT SCAN... 0%\n[....................]", scan.String())
	assert.Equal(t, "[##########..........]", Bar(50, 20))
}

func TestToolSimulation(t *testing.T) {
	for _, tool := range []string{"nmap", "hydra", "john"} {
		t.Run(tool, func(t *testing.T) {
			h := newHarness(t)
			h.run(t, tool)

			stream, ok := h.last(t).Output.(*Stream)
			require.True(t, ok)
			assert.Equal(t, "Starting "+tool+" at 13:04:05...", stream.Title)
			h.settle(t)

			lines := stream.Lines()
			require.Len(t, lines, 6)
			assert.Equal(t, "Target localhost resolved to 127.0.0.1", lines[1])
			assert.True(t, stream.Complete())
			assert.True(t, strings.HasPrefix(stream.Footer, "INFO: "))
			assert.NotContains(t, stream.Footer, "Usage:")
		})
	}
}

func TestSqlmapSimulation(t *testing.T) {
	h := newHarness(t)
	h.run(t, "sqlmap")

	stream := h.last(t).Output.(*Stream)
	h.settle(t)

	lines := stream.Lines()
	require.Len(t, lines, 12)
	assert.Equal(t, "[*] starting @ 13:04:05", lines[0])
	out := stream.String()
	assert.True(t, strings.HasPrefix(out, "___ sqlmap/1.5.8 ___"))
	assert.True(t, strings.HasSuffix(out, "VULNERABILITY CONFIRMED: SQL Injection"))
	assert.Contains(t, out, defaultSqlmapURL)
}

func TestMsfconsoleShowsPlaceholderFirst(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.TimeScale = 1 })
	h.run(t, "msfconsole")

	stream := h.last(t).Output.(*Stream)
	assert.Equal(t, "Starting the Metasploit Framework console...", stream.String())
	assert.False(t, h.s.Settled())

	h.s.Close()
	select {
	case <-stream.Done():
	default:
		t.Fatal("stream still running after Close")
	}
	assert.False(t, stream.Complete())
	assert.Empty(t, stream.Lines())
}

func TestSetoolkitRevealsAtOnce(t *testing.T) {
	h := newHarness(t)
	h.run(t, "setoolkit")
	h.settle(t)
	assert.True(t, strings.HasSuffix(h.last(t).Output.String(), "set> _"))
}

func TestStreamOrdersEvents(t *testing.T) {
	s := NewStream(Timeline{{At: 2 * time.Millisecond, Line: "b"}, {At: time.Millisecond, Line: "a"}})
	s.Run(context.Background(), 1)
	assert.Equal(t, []string{"a", "b"}, s.Lines())
	assert.True(t, s.Complete())
}

func TestStreamCancelled(t *testing.T) {
	s := NewStream(Every(time.Hour, 0, "never"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx, 1)

	<-s.Done()
	assert.Empty(t, s.Lines())
	assert.False(t, s.Complete())
}

func TestCloseStopsLiveContent(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.TimeScale = 1 })
	h.run(t, "scan; sqlmap; nmap")
	assert.False(t, h.s.Settled())

	h.s.Close()
	assert.True(t, h.s.Settled())

	// After Close, new simulations settle immediately.
	h.run(t, "nmap")
	assert.True(t, h.s.Settled())
}

func TestWaitHonoursContext(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.TimeScale = 1 })
	h.run(t, "msfconsole")

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.s.Wait(ctx), context.DeadlineExceeded)
}
