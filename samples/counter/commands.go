package counter

const IncrementCmd = "counter:increment"

type Increment struct {
	Counter string `json:"counter"`
	Amount  int    `json:"amount"`
}

func (Increment) TypeName() string {
	return IncrementCmd
}

const DecrementCmd = "counter:decrement"

type Decrement struct {
	Counter string `json:"counter"`
	Amount  int    `json:"amount"`
}

func (Decrement) TypeName() string {
	return DecrementCmd
}

const RandomizeCmd = "counter:randomize"

type Randomize struct {
	Counter string `json:"counter"`
}

func (Randomize) TypeName() string {
	return RandomizeCmd
}

// Reset has a content type but no handler.
const ResetCmd = "counter:reset"

type Reset struct {
	Counter string `json:"counter"`
}

func (Reset) TypeName() string {
	return ResetCmd
}
