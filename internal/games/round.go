// Package games holds the round lifecycle shared by every game and the
// in-memory store of active multi-decision rounds.
package games

// Game identifiers used for ledger settlement and metrics labels.
const (
	GameSlots     = "slots"
	GameBlackjack = "blackjack"
	GamePoker     = "poker"
	GameMines     = "mines"
	GameDice      = "dice"
	GameRoulette  = "roulette"
)

// Status tracks a round through its lifecycle. A round is Created when the
// stake is debited, AwaitingAction while a multi-decision game waits on the
// player, Resolved once the outcome is final and Settled after the payout
// credit (if any) is applied.
type Status string

// Round statuses.
const (
	StatusCreated        Status = "created"
	StatusAwaitingAction Status = "awaiting_action"
	StatusResolved       Status = "resolved"
	StatusSettled        Status = "settled"
)
