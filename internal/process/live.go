package process

import (
	"context"
	"fmt"
	"log/slog"
	"os/user"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// LiveSource reads the process table of the running host through gopsutil.
type LiveSource struct{}

// NewLiveSource returns a Source backed by the host process table.
func NewLiveSource() *LiveSource {
	return &LiveSource{}
}

// Snapshot enumerates every visible process. Processes that exit or deny
// access while being read are skipped.
func (s *LiveSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	me, err := currentUser()
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	records := make([]Record, 0, len(procs))
	for _, p := range procs {
		rec, err := readRecord(ctx, p)
		if err != nil {
			slog.DebugContext(ctx, "Skipping unreadable process", "pid", p.Pid, "error", err)
			continue
		}
		records = append(records, rec)
	}

	slog.DebugContext(ctx, "Acquired process snapshot", "processes", len(records), "user", me)

	return &Snapshot{CurrentUser: me, Records: records}, nil
}

func readRecord(ctx context.Context, p *process.Process) (Record, error) {
	ppid, err := p.PpidWithContext(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("ppid: %w", err)
	}

	owner, err := processOwner(ctx, p)
	if err != nil {
		return Record{}, fmt.Errorf("owner: %w", err)
	}

	// Kernel threads and some protected processes have no argv.
	args, _ := p.CmdlineSliceWithContext(ctx)
	cmdline := FormatCmdline(args)
	if cmdline == "" {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			return Record{}, fmt.Errorf("name: %w", err)
		}
		cmdline = "[" + name + "]"
	}

	if status, err := p.StatusWithContext(ctx); err == nil && isZombie(status) {
		cmdline = MarkZombie(cmdline)
	}

	return Record{
		PID:       p.Pid,
		ParentPID: ppid,
		Owner:     owner,
		Cmdline:   cmdline,
	}, nil
}

// FormatCmdline joins argv with single spaces, quoting arguments that contain
// a space so the boundaries stay readable.
func FormatCmdline(args []string) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			continue
		}
		if strings.Contains(arg, " ") {
			arg = `"` + arg + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// MarkZombie decorates the command line of a defunct process.
func MarkZombie(cmdline string) string {
	return "[" + cmdline + "] zombie!"
}

func isZombie(status []string) bool {
	for _, s := range status {
		if s == process.Zombie {
			return true
		}
	}
	return false
}

// Windows has no numeric uids; user names are compared there instead.
func processOwner(ctx context.Context, p *process.Process) (string, error) {
	if runtime.GOOS == "windows" {
		return p.UsernameWithContext(ctx)
	}
	uids, err := p.UidsWithContext(ctx)
	if err != nil {
		return "", err
	}
	if len(uids) == 0 {
		return "", fmt.Errorf("no uid reported")
	}
	return strconv.FormatInt(int64(uids[0]), 10), nil
}

func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return u.Username, nil
	}
	return u.Uid, nil
}
