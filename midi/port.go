package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ErrNoPorts is returned when no MIDI output port is available
var ErrNoPorts = errors.New("no MIDI output ports")

// scanTimeout bounds port enumeration (CoreMIDI can hang)
const scanTimeout = 3 * time.Second

// OutPorts returns the names of the available MIDI output ports
func OutPorts(ctx context.Context) ([]string, error) {
	outs, err := getOutPorts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

func getOutPorts(ctx context.Context) ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	select {
	case outs := <-ch:
		return outs, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("list MIDI ports: %w", ctx.Err())
	}
}

// PortSink sends events to a MIDI output port
type PortSink struct {
	name string
	out  drivers.Out
	send func(msg gomidi.Message) error
	mu   sync.Mutex
}

// OpenPort opens the output port whose name contains name (case-insensitive).
// An empty name picks the first port.
func OpenPort(ctx context.Context, name string) (*PortSink, error) {
	outs, err := getOutPorts(ctx)
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, ErrNoPorts
	}

	var out drivers.Out
	if name == "" {
		out = outs[0]
	} else {
		want := strings.ToLower(name)
		for _, op := range outs {
			if strings.Contains(strings.ToLower(op.String()), want) {
				out = op
				break
			}
		}
		if out == nil {
			return nil, fmt.Errorf("MIDI port %q not found", name)
		}
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", out.String(), err)
	}

	return &PortSink{
		name: out.String(),
		out:  out,
		send: send,
	}, nil
}

// Name returns the port name
func (p *PortSink) Name() string {
	return p.name
}

func (p *PortSink) Send(e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return fmt.Errorf("port %s is closed", p.name)
	}
	return p.send(e.Message())
}

func (p *PortSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = nil
	if p.out != nil && p.out.IsOpen() {
		return p.out.Close()
	}
	return nil
}

// CloseDriver releases the MIDI driver. Call once on exit.
func CloseDriver() {
	gomidi.CloseDriver()
}
