package midi

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	sampleRate = 44100
	// render block size in frames, matches meltysynth's default effect block
	block = 64
)

// synthesizer is the subset of meltysynth.Synthesizer the sink drives.
// Tests replace it with a mock.
type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	Render(left, right []float32)
}

// synthStream renders the synthesizer into interleaved float32 LE stereo
// frames for oto. MIDI messages and rendering share one lock.
type synthStream struct {
	mu    sync.Mutex
	syn   synthesizer
	left  []float32
	right []float32
}

func newSynthStream(syn synthesizer) *synthStream {
	return &synthStream{
		syn:   syn,
		left:  make([]float32, block),
		right: make([]float32, block),
	}
}

func (s *synthStream) process(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syn.ProcessMidiMessage(int32(e.Channel), int32(e.Command), int32(e.Data1), int32(e.Data2))
}

// Read fills p with whole stereo frames (8 bytes each).
func (s *synthStream) Read(p []byte) (int, error) {
	frames := len(p) / 8
	n := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for frames > 0 {
		count := min(frames, block)
		left, right := s.left[:count], s.right[:count]
		s.syn.Render(left, right)
		for i := 0; i < count; i++ {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(left[i]))
			binary.LittleEndian.PutUint32(p[n+4:], math.Float32bits(right[i]))
			n += 8
		}
		frames -= count
	}
	return n, nil
}

// SynthSink plays events on a SoundFont synthesizer through the system
// audio output
type SynthSink struct {
	stream *synthStream
	player *oto.Player
}

// OpenSynth loads the SoundFont at path and starts audio output
func OpenSynth(path string) (*SynthSink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open soundfont: %w", err)
	}
	defer f.Close()

	sf, err := meltysynth.NewSoundFont(f)
	if err != nil {
		return nil, fmt.Errorf("parse soundfont %s: %w", path, err)
	}
	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	syn, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("oto init: %w", err)
	}
	<-ready

	s := &SynthSink{stream: newSynthStream(syn)}
	s.player = ctx.NewPlayer(s.stream)
	s.player.Play()
	return s, nil
}

func (s *SynthSink) Send(e Event) error {
	s.stream.process(e)
	return nil
}

func (s *SynthSink) Close() error {
	if s.player == nil {
		return nil
	}
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("close audio player: %w", err)
	}
	s.player = nil
	return nil
}
