package ladder

// Суммы передаются строками с двумя знаками после запятой ("100.20")

type ClickRequest struct {
	Row int `json:"row"` // Индекс ряда (0 - нижний)
	Col int `json:"col"` // Индекс кувшинки в ряду
}

type LandRequest struct {
	Seq uint64 `json:"seq"` // Номер прыжка из ответа на клик
}

type BetRequest struct {
	Index int `json:"index"` // Индекс шага ставки
}

type DepositRequest struct {
	Amount string `json:"amount"` // Сумма пополнения
}

type SoundRequest struct {
	Muted  *bool    `json:"muted,omitempty"`
	Volume *float64 `json:"volume,omitempty"` // 0..1
}

type StateResponse struct {
	Phase            string `json:"phase"` // idle | playing | finishing
	Run              uint64 `json:"run"`
	Balance          string `json:"balance"`
	Bet              string `json:"bet"`
	BetIndex         int    `json:"bet_index"`
	CanIncrementBet  bool   `json:"can_increment_bet"`
	CanDecrementBet  bool   `json:"can_decrement_bet"`
	IsPlaying        bool   `json:"is_playing"`
	Finishing        bool   `json:"finishing"`
	Level            int    `json:"level"`
	LevelsCount      int    `json:"levels_count"`
	CurrentWin       string `json:"current_win"`
	NextWinIfAdvance string `json:"next_win_if_advance"`
	CanCollect       bool   `json:"can_collect"`
	FinishReason     string `json:"finish_reason,omitempty"` // collect | drop | all
	ShowWinOverlay   bool   `json:"show_win_overlay"`
	OverlayAmount    string `json:"overlay_amount"`

	Frog       Frog  `json:"frog"`
	RevealAll  bool  `json:"reveal_all"`
	IsJumping  bool  `json:"is_jumping"`
	WindowBase int   `json:"window_base"`
	FinalPage  bool  `json:"final_page"`
	Rows       []Row `json:"rows"` // Видимое окно, сверху вниз

	Cues   []Cue   `json:"cues"` // Звуки, накопленные с прошлого ответа
	Muted  bool    `json:"muted"`
	Volume float64 `json:"volume"`
}

type Frog struct {
	Row   int    `json:"row"` // -1 - на берегу
	Col   int    `json:"col"`
	Phase string `json:"phase"` // idle | jump
}

type Row struct {
	Index      int    `json:"index"`
	Multiplier string `json:"multiplier"`
	Clickable  bool   `json:"clickable"`
	Revealed   bool   `json:"revealed"`
	Traps      []int  `json:"traps,omitempty"` // Только для раскрытых рядов
}

type Cue struct {
	Kind string `json:"kind"` // sfx | music
	Name string `json:"name"`
}

// Hop - прыжок в полёте. Исход прыжка клиенту не раскрывается.
type Hop struct {
	Seq      uint64 `json:"seq"`
	Run      uint64 `json:"run"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Starting bool   `json:"starting"` // Прыжок открыл раунд
}

type ClickResponse struct {
	Hop   Hop           `json:"hop"`
	State StateResponse `json:"state"`
}

type RoundResponse struct {
	ID         string `json:"id"`
	Run        uint64 `json:"run"`
	Bet        string `json:"bet"`
	Level      int    `json:"level"`
	Payout     string `json:"payout"`
	Reason     string `json:"reason"`
	Seed       uint32 `json:"seed"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// ErrorResponse - отказ в действии. State - состояние после отказа со
// звуками, накопленными к этому моменту (например no_money).
type ErrorResponse struct {
	Error string         `json:"error"`
	State *StateResponse `json:"state,omitempty"`
}

type StatsResponse struct {
	Rounds      int64  `json:"rounds"`
	TotalBet    string `json:"total_bet"`
	TotalPayout string `json:"total_payout"`
	RTP         string `json:"rtp"`        // %, за всё время
	WindowRTP   string `json:"window_rtp"` // %, по последним WindowSize раундам
	WindowSize  int    `json:"window_size"`
	Collected   int64  `json:"collected"`
	Dropped     int64  `json:"dropped"`
	Cleared     int64  `json:"cleared"`
}
