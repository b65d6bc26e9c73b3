package server

// Scheduler throttles AI re-evaluation to a fixed interval and nests the
// slower command group refresh inside it. Movement runs every frame and
// does not go through the scheduler.
type Scheduler struct {
	Interval          float64
	CommanderInterval float64

	aiAcc     float64
	cmdAcc    float64
	refreshed bool
}

// NewScheduler creates a scheduler with the given intervals in seconds.
func NewScheduler(interval, commanderInterval float64) *Scheduler {
	return &Scheduler{Interval: interval, CommanderInterval: commanderInterval}
}

// Advance accounts for dt seconds of simulation. runAI is true when an AI
// tick is due; refreshGroups is true when that tick must rebuild command
// groups first. The first AI tick always refreshes.
func (sc *Scheduler) Advance(dt float64) (runAI, refreshGroups bool) {
	sc.aiAcc += dt
	if sc.aiAcc < sc.Interval {
		return false, false
	}
	sc.aiAcc -= sc.Interval
	if sc.aiAcc >= sc.Interval {
		// Fell behind; skip the backlog rather than bursting
		sc.aiAcc = 0
	}

	sc.cmdAcc += sc.Interval
	if !sc.refreshed || sc.cmdAcc >= sc.CommanderInterval {
		sc.refreshed = true
		sc.cmdAcc = 0
		return true, true
	}
	return true, false
}

// SetIntervals changes the cadence without resetting accumulated time.
func (sc *Scheduler) SetIntervals(interval, commanderInterval float64) {
	sc.Interval = interval
	sc.CommanderInterval = commanderInterval
}
