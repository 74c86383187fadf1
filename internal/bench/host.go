package bench

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Host describes the machine a run executed on.
type Host struct {
	CPU   string
	Cores int
}

// DetectHost reads the CPU model. Missing information is not an error: the
// run is still valid, only less comparable.
func DetectHost() Host {
	h := Host{CPU: "unknown", Cores: runtime.NumCPU()}
	infos, err := cpu.Info()
	if err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		h.CPU = infos[0].ModelName
	}
	return h
}

// ProcessRSS returns the resident memory of this process in bytes, or 0 if
// the platform does not report it.
func ProcessRSS() uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mem, err := proc.MemoryInfo()
	if err != nil || mem == nil {
		return 0
	}
	return mem.RSS
}
