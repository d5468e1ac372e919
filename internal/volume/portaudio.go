package volume

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

type portAudioController struct {
	log      zerolog.Logger
	feedback bool
	state    *levelState

	mu      sync.Mutex
	playing bool
	closed  bool
}

// New initializes PortAudio and returns a Controller backed by it.
// With feedback enabled, level changes play a short burst on the
// default output so hotkey presses are audible.
func New(log zerolog.Logger, feedback bool) (Controller, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &portAudioController{
		log:      log.With().Str("component", "volume").Logger(),
		feedback: feedback,
		state:    newLevelState(),
	}, nil
}

func (c *portAudioController) Devices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defaultDevice, _ := portaudio.DefaultOutputDevice()

	result := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d.MaxOutputChannels > 0 {
			result = append(result, Device{
				Name:    d.Name,
				Default: d == defaultDevice,
			})
		}
	}
	return result, nil
}

// resolve validates the target name. "" targets the default output.
func (c *portAudioController) resolve(target string) (string, error) {
	if target == "" {
		return "", nil
	}
	devices, err := c.Devices()
	if err != nil {
		return "", err
	}
	for _, d := range devices {
		if d.Name == target {
			return target, nil
		}
	}
	return "", unknownDevice(target)
}

func (c *portAudioController) Level(target string) (int, error) {
	t, err := c.resolve(target)
	if err != nil {
		return 0, err
	}
	return c.state.level(t), nil
}

func (c *portAudioController) SetLevel(target string, pct int) (int, error) {
	t, err := c.resolve(target)
	if err != nil {
		return 0, err
	}
	applied := c.state.setLevel(t, pct)
	c.log.Debug().
		Str("device", displayTarget(t)).
		Int("level", applied).
		Msg("Level set")
	c.playFeedback(t)
	return applied, nil
}

func (c *portAudioController) Adjust(target string, delta int) (int, error) {
	t, err := c.resolve(target)
	if err != nil {
		return 0, err
	}
	applied := c.state.adjust(t, delta)
	c.log.Debug().
		Str("device", displayTarget(t)).
		Int("delta", delta).
		Int("level", applied).
		Msg("Level adjusted")
	c.playFeedback(t)
	return applied, nil
}

func (c *portAudioController) ToggleMute(target string) (bool, error) {
	t, err := c.resolve(target)
	if err != nil {
		return false, err
	}
	muted := c.state.toggleMute(t)
	c.log.Debug().
		Str("device", displayTarget(t)).
		Bool("muted", muted).
		Msg("Mute toggled")
	if !muted {
		c.playFeedback(t)
	}
	return muted, nil
}

// playFeedback plays one burst on the default output. Bursts do not
// overlap; a press during playback is simply not sounded. A muted
// target is silent.
func (c *portAudioController) playFeedback(target string) {
	if !c.feedback || c.state.muted(target) {
		return
	}
	c.mu.Lock()
	if c.playing || c.closed {
		c.mu.Unlock()
		return
	}
	c.playing = true
	c.mu.Unlock()

	level := c.state.level(target)
	go func() {
		defer func() {
			c.mu.Lock()
			c.playing = false
			c.mu.Unlock()
		}()
		if err := playBurst(level); err != nil {
			c.log.Warn().Err(err).Msg("Feedback tone failed")
		}
	}()
}

func playBurst(level int) error {
	const frames = toneRate / 10
	burst := sineBurst(level, frames)

	chunk := make([]float32, 512)
	stream, err := portaudio.OpenDefaultStream(0, 1, toneRate, len(chunk), &chunk)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(burst); off += len(chunk) {
		n := copy(chunk, burst[off:])
		for i := n; i < len(chunk); i++ {
			chunk[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}
	}
	return nil
}

func displayTarget(target string) string {
	if target == "" {
		return "default"
	}
	return target
}

func (c *portAudioController) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	portaudio.Terminate()
	return nil
}
