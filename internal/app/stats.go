package app

import (
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
)

// cpuHistorySize is how many CPU samples the debug overlay keeps.
const cpuHistorySize = 20

// ProcessStats holds the latest samples shown in the debug overlay.
type ProcessStats struct {
	RSS        uint64
	CPUHistory []float64
	RAMUsage   float64
	Goroutines int
	Sampled    time.Time
}

// StatsMsg carries a fresh process sample.
type StatsMsg struct {
	RSS      uint64
	CPU      float64
	RAMUsage float64
}

var self *process.Process

func init() {
	// #nosec G115 - pids fit in int32 on every supported platform
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		self = p
	}
}

// sampleStats reads process and host memory figures. Failures leave zeros.
func sampleStats() StatsMsg {
	var msg StatsMsg
	if self != nil {
		if info, err := self.MemoryInfo(); err == nil {
			msg.RSS = info.RSS
		}
		if cpu, err := self.Percent(0); err == nil {
			msg.CPU = cpu
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		msg.RAMUsage = vm.UsedPercent
	}
	return msg
}

// StatsCmd samples process stats after the update interval.
func StatsCmd() tea.Cmd {
	return tea.Tick(config.StatsUpdateInterval, func(time.Time) tea.Msg {
		return sampleStats()
	})
}

// record stores a sample, keeping a bounded CPU history.
func (s *ProcessStats) record(msg StatsMsg, goroutines int) {
	s.RSS = msg.RSS
	s.RAMUsage = msg.RAMUsage
	s.Goroutines = goroutines
	s.Sampled = time.Now()
	s.CPUHistory = append(s.CPUHistory, msg.CPU)
	if len(s.CPUHistory) > cpuHistorySize {
		s.CPUHistory = s.CPUHistory[len(s.CPUHistory)-cpuHistorySize:]
	}
}
