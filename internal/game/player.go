package game

// Player is the engine's view of one seated position
type Player struct {
	Position    Position
	Stack       int  // chips behind
	Contributed int  // chips put in on the current street
	Committed   int  // chips put in over the whole hand
	Folded      bool // sticky once set
	AllIn       bool // sticky once the stack hits zero
	HasActed    bool // acted since the last bet or raise on this street
	LastAction  *Action
}

// IsLive returns true if the player can still be asked to act
func (p *Player) IsLive() bool {
	return !p.Folded && !p.AllIn
}

// ToCall returns the chips the player owes to match currentBet
func (p *Player) ToCall(currentBet int) int {
	if owed := currentBet - p.Contributed; owed > 0 {
		return owed
	}
	return 0
}

// put moves chips from the stack into the pot and flags all-in when empty
func (p *Player) put(amount int) {
	p.Stack -= amount
	p.Contributed += amount
	p.Committed += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
}

func (p *Player) snapshot() Player {
	out := *p
	if p.LastAction != nil {
		last := *p.LastAction
		out.LastAction = &last
	}
	return out
}
