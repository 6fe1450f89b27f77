package sequencer

import (
	"math"
	"sync"
	"time"

	"beatbox/debug"
	"beatbox/midi"
)

// PPQ is the track resolution in ticks per quarter note. One tick is one
// grid step (a 16th note).
const PPQ = 4

// Opener connects the player to its output when the player is opened
type Opener func() (midi.Sink, error)

// Player is the Sequencer that plays tracks in real time on a midi.Sink
type Player struct {
	opener Opener
	sink   midi.Sink

	mu       sync.Mutex
	track    Track // sorted by tick
	next     Track // swapped in at the next loop boundary
	hasNext  bool
	loop     bool
	bpm      float64
	factor   float64
	playing  bool
	tick     int
	sounding [16][128]bool // [channel][key] note is on
	stopChan chan struct{}
	done     chan struct{}

	// tempoChan wakes the play loop when the tempo changes mid-tick
	tempoChan chan struct{}

	// PlayheadChan receives the tick every time the playhead moves
	PlayheadChan chan int
}

var _ Sequencer = (*Player)(nil)

// NewPlayer creates a player. opener is called by Open.
func NewPlayer(opener Opener) *Player {
	return &Player{
		opener:       opener,
		bpm:          120,
		factor:       1.0,
		PlayheadChan: make(chan int, 1),
		tempoChan:    make(chan struct{}, 1),
	}
}

func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink != nil {
		return nil
	}
	if p.opener == nil {
		return ErrNoOutput
	}
	sink, err := p.opener()
	if err != nil {
		return err
	}
	p.sink = sink
	return nil
}

// Close stops playback and closes the output
func (p *Player) Close() error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink == nil {
		return nil
	}
	err := p.sink.Close()
	p.sink = nil
	return err
}

// SetTrack loads a track. While playing, the new track takes over when the
// current pass of the loop ends.
func (p *Player) SetTrack(t Track) error {
	sorted := t.Sorted()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.next = sorted
		p.hasNext = true
		return nil
	}
	p.track = sorted
	p.next = nil
	p.hasNext = false
	return nil
}

func (p *Player) SetLoopContinuously(loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = loop
}

// Start begins playback from tick 0. Starting while playing is a no-op.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink == nil {
		return ErrNotOpen
	}
	if len(p.track) == 0 && !p.hasNext {
		return ErrNoTrack
	}
	if p.playing {
		return nil
	}

	p.playing = true
	p.tick = 0
	p.stopChan = make(chan struct{})
	p.done = make(chan struct{})
	go p.playLoop(p.stopChan, p.done)

	debug.Log("player", "start bpm=%.1f factor=%.4f events=%d", p.bpm, p.factor, len(p.track))
	return nil
}

// Stop halts playback and silences notes that are still sounding
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	close(p.stopChan)
	done := p.done
	p.mu.Unlock()

	<-done
	p.silence()
	debug.Log("player", "stop")
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Tick returns the playhead position
func (p *Player) Tick() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick
}

func (p *Player) SetTempoBPM(bpm float64) {
	p.mu.Lock()
	p.bpm = bpm
	p.mu.Unlock()
	p.tempoChanged()
}

func (p *Player) TempoBPM() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bpm
}

func (p *Player) TempoFactor() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.factor
}

func (p *Player) SetTempoFactor(f float64) {
	p.mu.Lock()
	p.factor = f
	p.mu.Unlock()
	p.tempoChanged()
}

func (p *Player) tempoChanged() {
	select {
	case p.tempoChan <- struct{}{}:
	default:
	}
}

// tickDuration is one tick at the current tempo. ok is false for a
// non-positive tempo, which parks the playhead.
func (p *Player) tickDuration() (d time.Duration, ok bool) {
	p.mu.Lock()
	rate := p.bpm * p.factor * PPQ
	p.mu.Unlock()

	if rate <= 0 || math.IsNaN(rate) {
		return 0, false
	}
	f := float64(time.Minute) / rate
	if f > float64(math.MaxInt64/2) {
		return time.Duration(math.MaxInt64 / 2), true
	}
	return time.Duration(f), true
}

// waitTick blocks until the tick that began at start is over and returns
// the time the next tick begins. A tempo change rescales whatever part of
// the tick is left. It returns false when playback is stopped.
func (p *Player) waitTick(start time.Time, stop <-chan struct{}) (time.Time, bool) {
	dur, ok := p.tickDuration()
	deadline := start.Add(dur)
	left := 1.0 // fraction of the tick still to wait
	for {
		var timer *time.Timer
		var fire <-chan time.Time
		if ok {
			timer = time.NewTimer(time.Until(deadline))
			fire = timer.C
		}

		select {
		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return deadline, false
		case <-fire:
			return deadline, true
		case <-p.tempoChan:
			if timer != nil {
				timer.Stop()
			}
			now := time.Now()
			if ok && dur > 0 {
				left = min(max(float64(deadline.Sub(now))/float64(dur), 0), 1)
			}
			dur, ok = p.tickDuration()
			deadline = now.Add(time.Duration(left * float64(dur)))
		}
	}
}

func (p *Player) playLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	deadline := time.Now()
	for {
		p.mu.Lock()
		if p.hasNext {
			p.track = p.next
			p.next = nil
			p.hasNext = false
		}
		track := p.track
		loop := p.loop
		p.mu.Unlock()

		end := max(track.Ticks(), 1)
		idx := 0
		for tick := 0; ; tick++ {
			p.setTick(tick)
			for idx < len(track) && track[idx].Tick <= tick {
				p.send(track[idx])
				idx++
			}
			if tick >= end {
				break
			}

			// Wait for next tick or stop
			var running bool
			if deadline, running = p.waitTick(deadline, stop); !running {
				return
			}
		}

		if !loop {
			p.mu.Lock()
			p.playing = false
			p.mu.Unlock()
			return
		}
	}
}

func (p *Player) setTick(tick int) {
	p.mu.Lock()
	p.tick = tick
	p.mu.Unlock()

	// Notify TUI
	select {
	case p.PlayheadChan <- tick:
	default:
	}
}

// send plays one event. Output errors are logged and playback goes on.
func (p *Player) send(e midi.Event) {
	p.mu.Lock()
	sink := p.sink
	ch, key := e.Channel&0x0F, e.Data1&0x7F
	switch {
	case e.Command == midi.NoteOn && e.Data2 > 0:
		p.sounding[ch][key] = true
	case e.Command == midi.NoteOn, e.Command == midi.NoteOff:
		p.sounding[ch][key] = false
	}
	p.mu.Unlock()

	if sink == nil {
		return
	}
	if err := sink.Send(e); err != nil {
		debug.Error("player", err, "send "+e.String())
		return
	}
	debug.LogEvery(64, "dispatch", "sent %s", e)
}

// silence sends NoteOff for every note still on
func (p *Player) silence() {
	p.mu.Lock()
	var offs []midi.Event
	for ch := range p.sounding {
		for key, on := range p.sounding[ch] {
			if on {
				offs = append(offs, midi.Event{Command: midi.NoteOff, Channel: uint8(ch), Data1: uint8(key)})
				p.sounding[ch][key] = false
			}
		}
	}
	sink := p.sink
	p.mu.Unlock()

	if sink == nil {
		return
	}
	for _, e := range offs {
		if err := sink.Send(e); err != nil {
			debug.Error("player", err, "silence "+e.String())
		}
	}
}
