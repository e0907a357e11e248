package model

import "github.com/shopspring/decimal"

// HouseState - агрегаты по сыгранным раундам
type HouseState struct {
	TotalRounds int64           // Сколько всего раундов завершено
	TotalBet    decimal.Decimal // Сумма всех ставок
	TotalPayout decimal.Decimal // Сумма всех выплат

	CurrentRTP decimal.Decimal // TotalPayout/TotalBet*100

	Collected int64 // Забрали выигрыш
	Dropped   int64 // Утонули
	Cleared   int64 // Прошли всю лестницу

	RoundWindow []RoundResult   // Окно последних раундов
	WindowRTP   decimal.Decimal // RTP в окне
	WindowSize  int             // Размер окна
}

// Результат раунда для окна
type RoundResult struct {
	Bet    decimal.Decimal
	Payout decimal.Decimal
}
