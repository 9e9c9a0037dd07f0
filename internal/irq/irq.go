// Package irq defines the capability to suppress host interrupt delivery
// for the duration of a scan.
package irq

// Banks is the number of interrupt enable words a token captures.
const Banks = 3

// Token holds the interrupt sources that were enabled before Suppress.
type Token struct {
	Enabled [Banks]uint32
}

// Mask suppresses and restores host interrupts.
type Mask interface {
	// Suppress disables interrupt delivery and returns the previously
	// enabled set.
	Suppress() Token
	// Restore re-enables exactly the set captured in token.
	Restore(token Token)
}

// Nop is a Mask for platforms without the needed privilege.
type Nop struct{}

// Suppress implements Mask.
func (Nop) Suppress() Token { return Token{} }

// Restore implements Mask.
func (Nop) Restore(Token) {}
