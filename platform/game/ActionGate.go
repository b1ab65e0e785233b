package game

// actionGate is the room-wide debt lock. While a debtor holds it, no player in
// the room may roll, buy or end a turn. Only one debtor can hold it at a time.
// Switching to per-player gating only needs blocks to compare ids.
type actionGate struct {
	holder string
}

func (a *actionGate) lock(playerID string) { a.holder = playerID }

// release clears the gate only if playerID holds it.
func (a *actionGate) release(playerID string) bool {
	if a.holder == "" || a.holder != playerID {
		return false
	}
	a.holder = ""
	return true
}

func (a *actionGate) blocks(playerID string) bool { return a.holder != "" }

func (a *actionGate) holderID() string { return a.holder }
