package engine

import "errors"

var (
	// ErrInvalidAction is returned when a strategy's action is malformed or
	// out of contract for the current decision point.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInsufficientFunds is returned when an action would drive a player's
	// money negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientSupply is returned when the resource market holds fewer
	// units than requested.
	ErrInsufficientSupply = errors.New("insufficient supply")

	// ErrCapacityExceeded is returned when a resource purchase would exceed
	// the storage derived from the player's plants.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNoStrategyAssigned indicates a misconfigured game: a decision was
	// required from a player that has no strategy. Always fatal.
	ErrNoStrategyAssigned = errors.New("no strategy assigned")

	// ErrRetriesExhausted wraps the last validation failure after a required
	// decision failed the maximum number of attempts.
	ErrRetriesExhausted = errors.New("decision retries exhausted")

	// ErrGameOver is returned when an operation is attempted on a finished game.
	ErrGameOver = errors.New("game is over")
)
