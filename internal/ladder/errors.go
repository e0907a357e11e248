package ladder

import "errors"

// ErrInsufficientBalance - единственная ошибка, которую видит игрок
var ErrInsufficientBalance = errors.New("insufficient balance for this bet")

// Ошибки недопустимых переходов. Вызывающая сторона, которая уважает
// предикаты (IsRowClickable, CanCollect, ...), их не получает; проигнорированная
// ошибка означает, что состояние не изменилось.
var (
	ErrNotPlaying     = errors.New("no active run")
	ErrFinishing      = errors.New("run is finishing")
	ErrNotFinishing   = errors.New("run is not finishing")
	ErrStaleRun       = errors.New("run token does not match the active run")
	ErrLadderComplete = errors.New("all levels already cleared")
	ErrRunActive      = errors.New("not allowed while a run is active")
	ErrInvalidAmount  = errors.New("amount must be positive and within the deposit limit")
	ErrBalanceLimit   = errors.New("deposit would exceed the balance limit")
	ErrRowLocked      = errors.New("row is not clickable")
	ErrBadColumn      = errors.New("column out of range")
	ErrNoHop          = errors.New("no jump in flight")
	ErrStaleHop       = errors.New("jump does not match the one in flight")
	ErrHopInFlight    = errors.New("jump in flight")
	ErrRevealPending  = errors.New("board has not revealed a loss")
)
