package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"traychime/internal/core/model"
	"traychime/resources"
)

// ErrUnknownChime indicates a chime kind with no associated clip.
var ErrUnknownChime = errors.New("unknown chime kind")

const notifyTitle = "TrayChime"

var clipFiles = map[model.ChimeKind]string{
	model.ChimeHalfPast: "HalfPast.wav",
	model.ChimeHour:     "Bell.wav",
}

// Player plays the embedded chime clips. Playback is fire-and-forget: a
// failed or missing clip is logged and the chime is skipped, never fatal.
type Player struct {
	log *zap.Logger

	mu      sync.Mutex
	enabled bool
	buffers map[model.ChimeKind]*beep.Buffer
	format  beep.Format
	play    func(streamer beep.Streamer)
	notify  func(title, message string) error
}

// New decodes the embedded clips and initialises the speaker. Decode or
// speaker failure degrades the player to desktop notifications instead of
// failing startup.
func New(log *zap.Logger, enabled bool) *Player {
	player := &Player{
		log:     log,
		enabled: enabled,
		buffers: map[model.ChimeKind]*beep.Buffer{},
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}

	player.buffers, player.format = loadClips(log)

	if len(player.buffers) > 0 {
		if err := speaker.Init(player.format.SampleRate, player.format.SampleRate.N(100*time.Millisecond)); err != nil {
			log.Warn("init speaker, falling back to notifications", zap.Error(err))
			player.buffers = map[model.ChimeKind]*beep.Buffer{}
		} else {
			player.play = func(streamer beep.Streamer) {
				speaker.Play(streamer)
			}
		}
	}

	return player
}

// loadClips decodes the embedded clips into memory. Every buffer shares the
// format of the first clip that decodes; a clip recorded at another sample
// rate is resampled into it, since the speaker is initialised once.
func loadClips(log *zap.Logger) (map[model.ChimeKind]*beep.Buffer, beep.Format) {
	buffers := map[model.ChimeKind]*beep.Buffer{}
	var format beep.Format

	for kind, fileName := range clipFiles {
		data, err := resources.Sound(fileName)
		if err != nil {
			log.Warn("load chime clip", zap.String("clip", fileName), zap.Error(err))
			continue
		}
		streamer, clipFormat, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			log.Warn("decode chime clip", zap.String("clip", fileName), zap.Error(err))
			continue
		}
		if format == (beep.Format{}) {
			format = clipFormat
		}

		buffer := beep.NewBuffer(format)
		if clipFormat.SampleRate != format.SampleRate {
			buffer.Append(beep.Resample(4, clipFormat.SampleRate, format.SampleRate, streamer))
		} else {
			buffer.Append(streamer)
		}
		_ = streamer.Close()
		buffers[kind] = buffer
	}

	return buffers, format
}

// SetEnabled toggles sound playback. A disabled player swallows chimes.
func (player *Player) SetEnabled(enabled bool) {
	player.mu.Lock()
	player.enabled = enabled
	player.mu.Unlock()
}

// Enabled reports whether playback is on.
func (player *Player) Enabled() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.enabled
}

// Play queues the clip for the given chime kind and returns immediately.
// When no clip could be loaded the user still gets a desktop notification.
func (player *Player) Play(kind model.ChimeKind) error {
	if _, ok := clipFiles[kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChime, kind)
	}

	player.mu.Lock()
	enabled := player.enabled
	buffer := player.buffers[kind]
	play := player.play
	notify := player.notify
	player.mu.Unlock()

	if !enabled {
		return nil
	}
	if buffer == nil || play == nil {
		if err := notify(notifyTitle, chimeMessage(kind)); err != nil {
			return fmt.Errorf("chime notification: %w", err)
		}
		return nil
	}

	play(buffer.Streamer(0, buffer.Len()))
	return nil
}

func chimeMessage(kind model.ChimeKind) string {
	if kind == model.ChimeHour {
		return "The hour is up."
	}
	return "Half past the hour."
}
