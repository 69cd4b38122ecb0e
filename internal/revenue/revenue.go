// Package revenue implements the total-revenue observer fan-out. Observers
// are registered with the coordinator before a sale starts and are notified
// exactly once per finalized sale with the gross sale total.
package revenue

import (
	"tillpos/internal/money"

	"github.com/rs/zerolog/log"
)

// Notifier receives the gross VAT-inclusive total of each finalized sale.
// Implementations may keep cumulative state; fan-out is synchronous and in
// registration order, so per-sale updates never interleave.
type Notifier interface {
	OnTotalRevenue(amount money.Money) error
}

// Notify fans the amount out to every notifier in order. A failing or
// panicking notifier is logged and skipped; it never aborts the sale or
// prevents later notifiers from being updated.
func Notify(notifiers []Notifier, amount money.Money) {
	for _, n := range notifiers {
		notifyOne(n, amount)
	}
}

func notifyOne(n Notifier, amount money.Money) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("amount", amount.Colonized()).
				Msg("revenue notifier panicked")
		}
	}()
	if err := n.OnTotalRevenue(amount); err != nil {
		log.Error().
			Err(err).
			Str("amount", amount.Colonized()).
			Msgf("revenue notifier %T failed", n)
	}
}
