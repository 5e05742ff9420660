package agentsense

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is one ancestor process descriptor. Command is the full command
// line when the OS exposes it, otherwise the bare executable name.
type Process struct {
	PID     int32  `json:"pid"`
	Command string `json:"command"`
}

// maxAncestorDepth bounds the parent walk; real chains are far shallower.
const maxAncestorDepth = 64

// Ancestors walks the parent chain of the current process and returns the
// ancestors closest-first. The walk is best-effort: an unreadable ancestor
// ends the walk with whatever was collected, and callers treat an error as
// an empty chain.
func Ancestors() ([]Process, error) {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open current process: %w", err)
	}

	var chain []Process
	seen := map[int32]bool{self.Pid: true}

	cur := self
	for depth := 0; depth < maxAncestorDepth; depth++ {
		parent, err := cur.Parent()
		if err != nil || parent == nil {
			break
		}
		if seen[parent.Pid] {
			break
		}
		seen[parent.Pid] = true

		chain = append(chain, Process{PID: parent.Pid, Command: commandOf(parent)})
		if parent.Pid <= 1 {
			break
		}
		cur = parent
	}
	return chain, nil
}

func commandOf(p *process.Process) string {
	if cmdline, err := p.Cmdline(); err == nil && cmdline != "" {
		return cmdline
	}
	if name, err := p.Name(); err == nil {
		return name
	}
	return ""
}
