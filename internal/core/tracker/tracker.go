package tracker

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/stefior/WORK-WORK/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// ActivityProvider reports the currently foregrounded program.
type ActivityProvider interface {
	// ForegroundProgram returns the executable path and display name of
	// the foreground process. An empty path with a nil error means no
	// usable foreground window; the engine treats it as "not tracked".
	ForegroundProgram() (path string, name string, err error)
}

// Sounder plays the one-shot alert effect. Failures are never fatal.
type Sounder interface {
	PlayAlert() error
}

// Border toggles the not-working screen border. The engine calls it on
// state edges only, never every tick.
type Border interface {
	SetVisible(visible bool)
}

// Store persists engine state on demand. Implementations own the file
// format; the engine only issues targeted writes.
type Store interface {
	SavePreviousTime(seconds int) error
	SaveHistory(entries []int) error
	SaveIdleTimeout(seconds int) error
	SaveGoalTime(seconds int) error
	SavePlaySoundOnIdle(enabled bool) error
	SaveShowBorder(enabled bool) error
	SaveTrackedPrograms(programs map[string]string) error
}

// Config contains runtime options for the Tracker loop.
type Config struct {
	TickInterval      time.Duration
	UIRefreshInterval time.Duration
	AutosaveInterval  time.Duration
}

// Snapshot is a point-in-time copy of engine state for menu construction
// and dialogs. It shares nothing with the engine.
type Snapshot struct {
	Clock           string
	Total           time.Duration
	Counting        bool
	Status          Status
	IdleTimeout     time.Duration
	GoalTime        time.Duration
	PlaySoundOnIdle bool
	ShowBorder      bool
	History         []int // newest first
	Tracked         map[string]string
}

// Tracker is the work-session engine context. All engine state is owned
// by the run loop goroutine; hotkey and menu gestures are posted onto the
// requests channel and applied there, never from the caller's goroutine.
type Tracker struct {
	mu      sync.Mutex
	clock   Clock
	config  model.TrackerConfig
	options Config

	accumulator *Accumulator
	gate        *IdleGate
	watcher     *ThresholdWatcher
	ledger      *HistoryLedger

	activity ActivityProvider
	idle     IdleChecker
	sounder  Sounder
	border   Border
	store    Store
	logger   *slog.Logger

	// selfPath is this process's own executable; a foreground match
	// disqualifies counting so the tracker never tracks itself.
	selfPath string

	awaitingAdd     bool
	awaitingRemove  bool
	borderShown     bool
	status          Status
	idleUnsupported bool

	snapshot Snapshot
	events   []chan Event
	requests chan any
	stopCh   chan struct{}
	done     chan struct{}
	running  bool
}

// Request messages posted by hotkey listeners and menu handlers. They are
// drained by the run loop so engine state is never touched concurrently.
type (
	reqAddProgram     struct{}
	reqRemoveProgram  struct{}
	reqReset          struct{}
	reqSetTotal       struct{ seconds int }
	reqSetGoal        struct{ goal time.Duration }
	reqSetIdleTimeout struct{ timeout time.Duration }
	reqToggleSound    struct{}
	reqToggleBorder   struct{}
)

// New creates a Tracker from persisted configuration.
func New(config model.TrackerConfig, options Config, clock Clock, logger *slog.Logger) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.UIRefreshInterval <= 0 {
		options.UIRefreshInterval = time.Second
	}
	if options.AutosaveInterval <= 0 {
		options.AutosaveInterval = 30 * time.Second
	}
	if config.TrackedPrograms == nil {
		config.TrackedPrograms = map[string]string{}
	}

	keeper := &Tracker{
		clock:       clock,
		config:      config,
		options:     options,
		accumulator: NewAccumulator(clock, config.PreviousTime),
		gate:        NewIdleGate(config.IdleTimeout),
		watcher:     NewThresholdWatcher(config.GoalTime),
		ledger:      NewHistoryLedger(config.TimeHistory),
		logger:      logger,
		status:      StatusStarting,
		requests:    make(chan any, 16),
		stopCh:      make(chan struct{}),
	}
	keeper.config.IdleTimeout = keeper.gate.Timeout()
	// A restored total may already sit past a threshold; that is not a
	// crossing, so derive the latches silently.
	keeper.watcher.Rebase(keeper.accumulator.Total())
	keeper.publish()
	return keeper
}

// SetActivityProvider injects the foreground-program poller.
func (keeper *Tracker) SetActivityProvider(provider ActivityProvider) {
	keeper.activity = provider
}

// SetIdleChecker injects an idle checker.
func (keeper *Tracker) SetIdleChecker(checker IdleChecker) {
	keeper.idle = checker
}

// SetSounder injects the alert sound collaborator.
func (keeper *Tracker) SetSounder(sounder Sounder) {
	keeper.sounder = sounder
}

// SetBorder injects the border visibility collaborator.
func (keeper *Tracker) SetBorder(border Border) {
	keeper.border = border
}

// SetStore injects the persistence collaborator.
func (keeper *Tracker) SetStore(store Store) {
	keeper.store = store
}

// SetSelfPath records this process's executable path for the self-focus check.
func (keeper *Tracker) SetSelfPath(path string) {
	keeper.selfPath = path
}

// Subscribe registers a new observer channel.
func (keeper *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the run loop.
func (keeper *Tracker) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.done = make(chan struct{})
	keeper.mu.Unlock()

	go keeper.run()
}

// Stop terminates the run loop, records the session boundary and closes
// observers. It waits for the loop goroutine to drain before touching
// engine state; the loop stays the sole mutator until it has exited.
func (keeper *Tracker) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = false
	close(keeper.stopCh)
	done := keeper.done
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	if done != nil {
		<-done
	}

	keeper.saveSessionBoundary()

	for _, ch := range events {
		close(ch)
	}
}

// RequestAddProgram arms the add-program gesture. Safe to call from hotkey
// listener goroutines; the flag is consumed on a later activity tick.
func (keeper *Tracker) RequestAddProgram() { keeper.post(reqAddProgram{}) }

// RequestRemoveProgram arms the remove-program gesture.
func (keeper *Tracker) RequestRemoveProgram() { keeper.post(reqRemoveProgram{}) }

// RequestReset records the current total into history and zeroes the clock.
func (keeper *Tracker) RequestReset() { keeper.post(reqReset{}) }

// RequestSetTotal replaces the session total (manual edit or history resume).
func (keeper *Tracker) RequestSetTotal(seconds int) { keeper.post(reqSetTotal{seconds: seconds}) }

// RequestSetGoal replaces the goal time. Zero disables goal alerts.
func (keeper *Tracker) RequestSetGoal(goal time.Duration) { keeper.post(reqSetGoal{goal: goal}) }

// RequestSetIdleTimeout replaces the idle timeout.
func (keeper *Tracker) RequestSetIdleTimeout(timeout time.Duration) {
	keeper.post(reqSetIdleTimeout{timeout: timeout})
}

// RequestToggleSound flips the idle-sound setting.
func (keeper *Tracker) RequestToggleSound() { keeper.post(reqToggleSound{}) }

// RequestToggleBorder flips the not-working border setting.
func (keeper *Tracker) RequestToggleBorder() { keeper.post(reqToggleBorder{}) }

// Snapshot returns a copy of the published engine state.
func (keeper *Tracker) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	snapshot := keeper.snapshot
	snapshot.History = append([]int(nil), keeper.snapshot.History...)
	tracked := make(map[string]string, len(keeper.snapshot.Tracked))
	for path, name := range keeper.snapshot.Tracked {
		tracked[path] = name
	}
	snapshot.Tracked = tracked
	return snapshot
}

func (keeper *Tracker) post(request any) {
	select {
	case keeper.requests <- request:
	default:
		keeper.logger.Warn("tracker request dropped", "request", request)
	}
}

func (keeper *Tracker) run() {
	defer close(keeper.done)

	activityTicker := time.NewTicker(keeper.options.TickInterval)
	defer activityTicker.Stop()
	uiTicker := time.NewTicker(keeper.options.UIRefreshInterval)
	defer uiTicker.Stop()
	autosaveTicker := time.NewTicker(keeper.options.AutosaveInterval)
	defer autosaveTicker.Stop()

	for {
		select {
		case <-keeper.stopCh:
			return
		case request := <-keeper.requests:
			keeper.apply(request)
		case <-activityTicker.C:
			keeper.OnActivityTick()
		case <-uiTicker.C:
			keeper.OnUIRefreshTick()
		case <-autosaveTicker.C:
			keeper.OnAutosaveTick()
		}
	}
}

func (keeper *Tracker) apply(request any) {
	switch message := request.(type) {
	case reqAddProgram:
		keeper.awaitingAdd = true
		keeper.awaitingRemove = false
		keeper.emit(keeper.notice("add prog"))
	case reqRemoveProgram:
		keeper.awaitingRemove = true
		keeper.awaitingAdd = false
		keeper.emit(keeper.notice("rem prog"))
	case reqReset:
		keeper.handleReset()
	case reqSetTotal:
		keeper.handleSetTotal(message.seconds)
	case reqSetGoal:
		keeper.handleSetGoal(message.goal)
	case reqSetIdleTimeout:
		keeper.handleSetIdleTimeout(message.timeout)
	case reqToggleSound:
		keeper.handleToggleSound()
	case reqToggleBorder:
		keeper.handleToggleBorder()
	}
}

// OnActivityTick polls the desktop state and drives the counting pipeline.
// It must only be invoked from the run loop goroutine.
func (keeper *Tracker) OnActivityTick() {
	sample := keeper.poll()
	keeper.consumeProgramGesture(sample)

	decision := keeper.gate.Evaluate(sample, keeper.config.TrackedPrograms)

	if decision.IdleStarted && keeper.config.PlaySoundOnIdle {
		keeper.playAlert()
	}

	keeper.accumulator.Apply(decision.ShouldCount)
	total := keeper.accumulator.Total()

	goalFired, maxFired := keeper.watcher.Check(total)
	if goalFired {
		keeper.emit(Event{Type: EventGoalReached, Total: total, Clock: FormatClock(total), At: keeper.clock.Now()})
	}
	if maxFired {
		keeper.emit(Event{Type: EventMaxReached, Total: total, Clock: FormatClock(total), At: keeper.clock.Now()})
	}

	keeper.updateBorder(decision.ShouldCount)
	keeper.updateStatus(decision.ShouldCount)
	keeper.publish()

	if !keeper.awaitingAdd && !keeper.awaitingRemove {
		keeper.emitDisplay()
	}
}

// OnUIRefreshTick re-emits the display without touching counting state.
func (keeper *Tracker) OnUIRefreshTick() {
	keeper.publish()
	if !keeper.awaitingAdd && !keeper.awaitingRemove {
		keeper.emitDisplay()
	}
}

// OnAutosaveTick persists the current total so a crash loses at most one
// autosave interval.
func (keeper *Tracker) OnAutosaveTick() {
	if keeper.store == nil {
		return
	}
	seconds := int(keeper.accumulator.Total() / time.Second)
	if err := keeper.store.SavePreviousTime(seconds); err != nil {
		keeper.logger.Error("autosave previous time", "error", err)
	}
}

func (keeper *Tracker) poll() ActivitySample {
	sample := ActivitySample{}
	if keeper.activity != nil {
		path, name, err := keeper.activity.ForegroundProgram()
		if err != nil {
			// Not an error condition: counting simply pauses.
			keeper.logger.Debug("foreground lookup failed", "error", err)
		} else {
			sample.ForegroundPath = path
			sample.ForegroundName = name
		}
	}
	sample.SelfFocused = keeper.selfPath != "" && sample.ForegroundPath == keeper.selfPath

	if keeper.idle != nil && !keeper.idleUnsupported {
		idleFor, err := keeper.idle.IdleDuration()
		switch {
		case errors.Is(err, ErrIdleUnsupported):
			keeper.idleUnsupported = true
			keeper.emit(Event{Type: EventIdleError, Message: err.Error(), At: keeper.clock.Now()})
		case err != nil:
			keeper.logger.Error("idle lookup failed", "error", err)
		default:
			sample.IdleFor = idleFor
		}
	}
	return sample
}

// consumeProgramGesture applies a pending add/remove once a usable
// foreground sample arrives. Self-focused and empty samples keep the
// gesture armed: the user is still on the tracker's own window.
func (keeper *Tracker) consumeProgramGesture(sample ActivitySample) {
	if !keeper.awaitingAdd && !keeper.awaitingRemove {
		return
	}
	if sample.ForegroundPath == "" || sample.SelfFocused {
		return
	}

	path := sample.ForegroundPath
	name := sample.ForegroundName
	if name == "" {
		name = path
	}
	_, known := keeper.config.TrackedPrograms[path]

	if keeper.awaitingAdd {
		keeper.awaitingAdd = false
		if known {
			keeper.emit(keeper.notice("already+"))
			return
		}
		keeper.config.TrackedPrograms[path] = name
		keeper.saveTracked()
		keeper.logger.Info("program added", "path", path, "name", name)
		keeper.emit(keeper.notice("added"))
		return
	}

	keeper.awaitingRemove = false
	if !known {
		keeper.emit(keeper.notice("already-"))
		return
	}
	delete(keeper.config.TrackedPrograms, path)
	keeper.saveTracked()
	keeper.logger.Info("program removed", "path", path)
	keeper.emit(keeper.notice("removed"))
}

func (keeper *Tracker) handleReset() {
	total := keeper.accumulator.Total()
	if total <= 0 {
		return
	}
	keeper.recordBoundary(total)
	keeper.accumulator.Reset()
	keeper.watcher.Rebase(0)
	keeper.publish()
	keeper.emitDisplay()
}

func (keeper *Tracker) handleSetTotal(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	previous := keeper.accumulator.Total()
	if previous > 0 {
		keeper.recordBoundary(previous)
	}
	keeper.accumulator.SetTotal(time.Duration(seconds) * time.Second)
	keeper.watcher.Rebase(keeper.accumulator.Total())
	keeper.publish()
	keeper.emitDisplay()
}

func (keeper *Tracker) handleSetGoal(goal time.Duration) {
	if goal < 0 {
		goal = 0
	}
	keeper.config.GoalTime = goal
	keeper.watcher.SetGoal(goal, keeper.accumulator.Total())
	if keeper.store != nil {
		if err := keeper.store.SaveGoalTime(int(goal / time.Second)); err != nil {
			keeper.logger.Error("save goal time", "error", err)
		}
	}
	keeper.publish()
}

func (keeper *Tracker) handleSetIdleTimeout(timeout time.Duration) {
	keeper.gate.SetTimeout(timeout)
	keeper.config.IdleTimeout = keeper.gate.Timeout()
	if keeper.store != nil {
		if err := keeper.store.SaveIdleTimeout(int(keeper.config.IdleTimeout / time.Second)); err != nil {
			keeper.logger.Error("save idle timeout", "error", err)
		}
	}
	keeper.publish()
}

func (keeper *Tracker) handleToggleSound() {
	keeper.config.PlaySoundOnIdle = !keeper.config.PlaySoundOnIdle
	if keeper.store != nil {
		if err := keeper.store.SavePlaySoundOnIdle(keeper.config.PlaySoundOnIdle); err != nil {
			keeper.logger.Error("save sound toggle", "error", err)
		}
	}
	if keeper.config.PlaySoundOnIdle {
		keeper.emit(keeper.notice("snd on"))
	} else {
		keeper.emit(keeper.notice("snd off"))
	}
	keeper.publish()
}

func (keeper *Tracker) handleToggleBorder() {
	keeper.config.ShowBorderWhenNotWorking = !keeper.config.ShowBorderWhenNotWorking
	if keeper.store != nil {
		if err := keeper.store.SaveShowBorder(keeper.config.ShowBorderWhenNotWorking); err != nil {
			keeper.logger.Error("save border toggle", "error", err)
		}
	}
	if !keeper.config.ShowBorderWhenNotWorking && keeper.borderShown {
		keeper.setBorderVisible(false)
	}
	if keeper.config.ShowBorderWhenNotWorking {
		keeper.emit(keeper.notice("brdr on"))
	} else {
		keeper.emit(keeper.notice("brdr off"))
	}
	keeper.publish()
}

// recordBoundary writes the session total into history and persists both
// the history and the previous-time slot used by resume.
func (keeper *Tracker) recordBoundary(total time.Duration) {
	seconds := int(total / time.Second)
	keeper.ledger.Record(seconds)
	if keeper.store == nil {
		return
	}
	if err := keeper.store.SaveHistory(keeper.ledger.Entries()); err != nil {
		keeper.logger.Error("save history", "error", err)
	}
	if err := keeper.store.SavePreviousTime(seconds); err != nil {
		keeper.logger.Error("save previous time", "error", err)
	}
}

func (keeper *Tracker) saveSessionBoundary() {
	total := keeper.accumulator.Total()
	keeper.accumulator.Apply(false)
	if total > 0 {
		keeper.recordBoundary(total)
	} else if keeper.store != nil {
		if err := keeper.store.SavePreviousTime(0); err != nil {
			keeper.logger.Error("save previous time", "error", err)
		}
	}
}

func (keeper *Tracker) saveTracked() {
	if keeper.store == nil {
		return
	}
	if err := keeper.store.SaveTrackedPrograms(keeper.config.CloneTracked()); err != nil {
		keeper.logger.Error("save tracked programs", "error", err)
	}
}

func (keeper *Tracker) playAlert() {
	if keeper.sounder == nil {
		return
	}
	if err := keeper.sounder.PlayAlert(); err != nil {
		keeper.logger.Error("play alert", "error", err)
	}
}

func (keeper *Tracker) setBorderVisible(visible bool) {
	keeper.borderShown = visible
	if keeper.border != nil {
		keeper.border.SetVisible(visible)
	}
}

func (keeper *Tracker) updateBorder(counting bool) {
	want := keeper.config.ShowBorderWhenNotWorking && !counting
	if want != keeper.borderShown {
		keeper.setBorderVisible(want)
	}
}

func (keeper *Tracker) updateStatus(counting bool) {
	if counting {
		if keeper.status != StatusWorking {
			keeper.status = StatusWorking
			keeper.emit(Event{Type: EventStatus, Status: keeper.status, At: keeper.clock.Now()})
		}
		return
	}
	if keeper.status == StatusWorking {
		keeper.status = StatusNotWorking
		keeper.emit(Event{Type: EventStatus, Status: keeper.status, At: keeper.clock.Now()})
	}
}

func (keeper *Tracker) notice(message string) Event {
	return Event{Type: EventNotice, Message: message, At: keeper.clock.Now()}
}

func (keeper *Tracker) emitDisplay() {
	total := keeper.accumulator.Total()
	keeper.emit(Event{
		Type:     EventDisplay,
		Total:    ClampDisplay(total),
		Clock:    FormatClock(total),
		Counting: keeper.accumulator.Running(),
		Status:   keeper.status,
		At:       keeper.clock.Now(),
	})
}

func (keeper *Tracker) publish() {
	total := keeper.accumulator.Total()
	keeper.mu.Lock()
	keeper.snapshot = Snapshot{
		Clock:           FormatClock(total),
		Total:           ClampDisplay(total),
		Counting:        keeper.accumulator.Running(),
		Status:          keeper.status,
		IdleTimeout:     keeper.config.IdleTimeout,
		GoalTime:        keeper.config.GoalTime,
		PlaySoundOnIdle: keeper.config.PlaySoundOnIdle,
		ShowBorder:      keeper.config.ShowBorderWhenNotWorking,
		History:         keeper.ledger.List(),
		Tracked:         keeper.config.CloneTracked(),
	}
	keeper.mu.Unlock()
}

func (keeper *Tracker) emit(event Event) {
	keeper.mu.Lock()
	observers := append([]chan Event(nil), keeper.events...)
	keeper.mu.Unlock()
	for _, ch := range observers {
		select {
		case ch <- event:
		default:
		}
	}
}
