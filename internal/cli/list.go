package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
	"github.com/rileyhilliard/sockwatch/internal/ui"
	"github.com/rileyhilliard/sockwatch/internal/util"
)

// Output formats for list.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// maxColumnWidth caps table columns so long command names don't wrap lines.
const maxColumnWidth = 40

// ListOptions holds options for the list command.
type ListOptions struct {
	Proto  string // tcp, udp or all
	Output string // table, json or yaml
	Logger *log.Logger
}

// socketRow is one socket as printed by list.
type socketRow struct {
	Proto     string   `json:"proto" yaml:"proto"`
	Local     string   `json:"local" yaml:"local"`
	Remote    string   `json:"remote" yaml:"remote"`
	State     string   `json:"state,omitempty" yaml:"state,omitempty"`
	PIDs      []int32  `json:"pids" yaml:"pids"`
	Processes []string `json:"processes,omitempty" yaml:"processes,omitempty"`
}

// listResult is the machine-readable payload of list.
type listResult struct {
	TCPCount int         `json:"tcp_count" yaml:"tcp_count"`
	UDPCount int         `json:"udp_count" yaml:"udp_count"`
	Sockets  []socketRow `json:"sockets" yaml:"sockets"`
}

// protocolsFor maps the --proto flag to the protocols to enumerate.
func protocolsFor(proto string) ([]sockets.Protocol, error) {
	switch strings.ToLower(proto) {
	case "", "all":
		return sockets.AllProtocols, nil
	case "tcp":
		return []sockets.Protocol{sockets.ProtoTCP}, nil
	case "udp":
		return []sockets.Protocol{sockets.ProtoUDP}, nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown protocol: %s", proto),
			"Use one of: tcp, udp, all")
	}
}

// collectSockets enumerates once and flattens the snapshot into rows, TCP
// first, each protocol in enumeration order.
func collectSockets(ctx context.Context, enum sockets.Enumerator, insp procinfo.Inspector, proto string, log *log.Logger) (*listResult, error) {
	protos, err := protocolsFor(proto)
	if err != nil {
		return nil, err
	}

	raw, err := enum.Enumerate(ctx, sockets.AllFamilies, protos)
	if err != nil {
		return nil, errors.NewEnumerationFailed(err)
	}
	snap := sockets.Partition(raw)

	// Process names are best effort; rows keep their pids either way.
	if err := insp.RefreshAll(ctx); err != nil {
		log.Warn("process list refresh failed", "err", err)
	}

	res := &listResult{
		TCPCount: len(snap.TCP),
		UDPCount: len(snap.UDP),
		Sockets:  make([]socketRow, 0, snap.Len()),
	}
	for _, e := range snap.TCP {
		res.Sockets = append(res.Sockets, socketRow{
			Proto:     sockets.Kind(sockets.ProtoTCP, e.Family),
			Local:     hostPort(e.LocalAddr, e.LocalPort),
			Remote:    hostPort(e.RemoteAddr, e.RemotePort),
			State:     e.State,
			PIDs:      nonNilPIDs(e.PIDs),
			Processes: processNames(ctx, insp, e.PIDs),
		})
	}
	for _, e := range snap.UDP {
		res.Sockets = append(res.Sockets, socketRow{
			Proto:     sockets.Kind(sockets.ProtoUDP, e.Family),
			Local:     hostPort(e.LocalAddr, e.LocalPort),
			Remote:    "*:*",
			PIDs:      nonNilPIDs(e.PIDs),
			Processes: processNames(ctx, insp, e.PIDs),
		})
	}
	return res, nil
}

func hostPort(addr string, port uint32) string {
	return net.JoinHostPort(addr, strconv.FormatUint(uint64(port), 10))
}

func nonNilPIDs(pids []int32) []int32 {
	if pids == nil {
		return []int32{}
	}
	return pids
}

func processNames(ctx context.Context, insp procinfo.Inspector, pids []int32) []string {
	var names []string
	for _, pid := range pids {
		if info, ok := insp.Lookup(ctx, pid); ok && info.Name != "" {
			names = append(names, info.Name)
		}
	}
	return names
}

// writeList prints the result in the requested format.
func writeList(w io.Writer, res *listResult, output string) error {
	switch output {
	case outputJSON:
		return WriteJSONSuccess(w, res)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Failed to encode sockets as YAML", "")
		}
		return enc.Close()
	}

	if len(res.Sockets) == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render(ui.SymbolPending+" no sockets found"))
		return nil
	}

	titles := []string{"Proto", "Local", "Remote", "State", "PIDs", "Process"}
	rows := make([][]string, len(res.Sockets))
	for i, s := range res.Sockets {
		pids := make([]string, len(s.PIDs))
		for j, pid := range s.PIDs {
			pids[j] = strconv.Itoa(int(pid))
		}
		state := s.State
		if state == "" {
			state = "-"
		}
		rows[i] = []string{
			s.Proto,
			s.Local,
			s.Remote,
			state,
			util.JoinOrDefault(pids, "-"),
			util.JoinOrDefault(s.Processes, "-"),
		}
	}

	fmt.Fprintln(w, ui.RenderSimpleTable(ui.FitColumns(titles, rows, maxColumnWidth), rows))
	fmt.Fprintln(w, ui.MutedStyle().Render(fmt.Sprintf("%s, %s",
		util.CountNoun(res.TCPCount, "TCP socket", "TCP sockets"),
		util.CountNoun(res.UDPCount, "UDP socket", "UDP sockets"))))
	return nil
}

// listCommand is the implementation called by the cobra command.
func listCommand(ctx context.Context, w io.Writer, enum sockets.Enumerator, insp procinfo.Inspector, opts ListOptions) error {
	switch opts.Output {
	case "", outputTable, outputJSON, outputYAML:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format: %s", opts.Output),
			"Use one of: table, json, yaml")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	res, err := collectSockets(ctx, enum, insp, opts.Proto, log)
	if err != nil {
		return err
	}
	return writeList(w, res, opts.Output)
}
