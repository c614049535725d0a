package bench

// HTTP status code constants.
const (
	StatusOK         = 200
	StatusBadRequest = 400
)

// Selection bounds the service enforces on POST /simulations.
const (
	minSelection = 4
	maxSelection = 5
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	floatTolerance       = 1e-6
)
