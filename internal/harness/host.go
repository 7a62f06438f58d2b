package harness

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine a sweep ran on. It is stored with each
// run since timings are only comparable across identical hosts.
type HostInfo struct {
	GOOS        string   `json:"goos"`
	GOARCH      string   `json:"goarch"`
	NumCPU      int      `json:"num_cpu"`
	GoVersion   string   `json:"go_version"`
	CPUFeatures []string `json:"cpu_features"`
}

// CaptureHost returns the HostInfo of the running process.
func CaptureHost() HostInfo {
	return HostInfo{
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CPUFeatures: cpuFeatures(),
	}
}

// cpuFeatures lists the vector extensions detected on the host.
// Returns an empty slice (not nil) on architectures with none.
func cpuFeatures() []string {
	features := []string{}
	add := func(has bool, name string) {
		if has {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
		add(cpu.X86.HasBMI2, "bmi2")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasATOMICS, "atomics")
	}
	return features
}
