package ladder

// Имена звуковых эффектов
const (
	SfxJump       = "jump"
	SfxLand       = "land"
	SfxSplash     = "splash"
	SfxDrown      = "frog_drown"
	SfxWin        = "win"
	SfxLilyAppear = "lilly_appear"
	SfxNoMoney    = "no_money"
	MusicAmbience = "ambience"
)

const (
	CueSfx   = "sfx"
	CueMusic = "music"
)

// Sound - внешний аудио-движок. Вызовы fire-and-forget.
type Sound interface {
	PlaySfx(name string)
	PlayMusic(name string)
	SetMuted(muted bool)
	SetVolume(volume float64)
}

type nopSound struct{}

func (nopSound) PlaySfx(string)    {}
func (nopSound) PlayMusic(string)  {}
func (nopSound) SetMuted(bool)     {}
func (nopSound) SetVolume(float64) {}

// Cue - звуковая подсказка для клиента
type Cue struct {
	Kind string
	Name string
}

// CueBuffer копит подсказки, чтобы отдать их клиенту вместе с состоянием.
// При выключенном звуке подсказки не пишутся.
type CueBuffer struct {
	cues   []Cue
	muted  bool
	volume float64
}

// NewCueBuffer создаёт буфер с полной громкостью
func NewCueBuffer() *CueBuffer {
	return &CueBuffer{volume: 1}
}

func (b *CueBuffer) PlaySfx(name string) {
	if b.muted {
		return
	}
	b.cues = append(b.cues, Cue{Kind: CueSfx, Name: name})
}

func (b *CueBuffer) PlayMusic(name string) {
	if b.muted {
		return
	}
	b.cues = append(b.cues, Cue{Kind: CueMusic, Name: name})
}

func (b *CueBuffer) SetMuted(muted bool) {
	b.muted = muted
}

// SetVolume ограничивает громкость диапазоном 0..1
func (b *CueBuffer) SetVolume(volume float64) {
	b.volume = min(1, max(0, volume))
}

// Muted сообщает, выключен ли звук
func (b *CueBuffer) Muted() bool {
	return b.muted
}

// Volume - текущая громкость
func (b *CueBuffer) Volume() float64 {
	return b.volume
}

// Drain возвращает накопленные подсказки и очищает буфер
func (b *CueBuffer) Drain() []Cue {
	out := b.cues
	b.cues = nil
	return out
}
