package model

import "ladder_backend/internal/ladder"

// LadderState - снимок игры вместе с накопленными звуковыми подсказками
type LadderState struct {
	Game   ladder.State
	Cues   []ladder.Cue
	Muted  bool
	Volume float64
}

// ClickResult - начатый прыжок и состояние после клика
type ClickResult struct {
	Hop   ladder.Hop
	State LadderState
}

// SoundSettings - изменение настроек звука. nil - не менять.
type SoundSettings struct {
	Muted  *bool
	Volume *float64
}
