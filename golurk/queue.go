package golurk

import (
	"cmp"
	"slices"
)

type ActionKind int

const (
	ACTION_TEAM ActionKind = iota + 1
	ACTION_START
	ACTION_INSTASWITCH
	ACTION_BEFORE_TURN
	ACTION_RUN_SWITCH
	ACTION_SWITCH
	ACTION_MEGA_EVO
	ACTION_TERASTALLIZE
	ACTION_MOVE
	ACTION_PASS
	ACTION_RESIDUAL
)

var actionNames = map[ActionKind]string{
	ACTION_TEAM:         "team",
	ACTION_START:        "start",
	ACTION_INSTASWITCH:  "instaswitch",
	ACTION_BEFORE_TURN:  "beforeTurn",
	ACTION_RUN_SWITCH:   "runSwitch",
	ACTION_SWITCH:       "switch",
	ACTION_MEGA_EVO:     "megaEvo",
	ACTION_TERASTALLIZE: "terastallize",
	ACTION_MOVE:         "move",
	ACTION_PASS:         "pass",
	ACTION_RESIDUAL:     "residual",
}

func (k ActionKind) String() string {
	return actionNames[k]
}

// Queue tiers. Smaller tiers always run first.
var actionTiers = map[ActionKind]int{
	ACTION_TEAM:         1,
	ACTION_START:        2,
	ACTION_INSTASWITCH:  3,
	ACTION_BEFORE_TURN:  4,
	ACTION_RUN_SWITCH:   101,
	ACTION_SWITCH:       103,
	ACTION_MEGA_EVO:     104,
	ACTION_TERASTALLIZE: 106,
	ACTION_MOVE:         200,
	ACTION_PASS:         200,
	ACTION_RESIDUAL:     300,
}

// Action is one queued unit of turn resolution.
type Action struct {
	Kind  ActionKind
	Order int
	// Priority and FractionalPriority are fixed when the action enters the queue
	Priority           int
	FractionalPriority int
	// Speed is refreshed from battle state every time the queue is sorted
	Speed int
	Seq   int

	Pokemon PokemonRef
	// Target is the Pokemon switching in for switch actions
	Target PokemonRef
	// TargetLoc is the move target location, see Battle.targetFromLoc
	TargetLoc    int
	Move         ID
	SourceEffect ID

	Mega         bool
	Terastallize bool

	// activeMove is built when the move's priority is resolved and reused when it runs
	activeMove *ActiveMove

	// team preview order, party indexes in their new order
	Side      int
	TeamOrder []int
}

// fieldAction builds an action that belongs to no Pokemon, like start or residual.
func fieldAction(kind ActionKind) *Action {
	return &Action{Kind: kind, Pokemon: NoPokemon, Target: NoPokemon}
}

// ActionQueue orders pending actions for one battle.
type ActionQueue struct {
	list []*Action
	seq  int
	b    *Battle
}

func newActionQueue(b *Battle) *ActionQueue {
	return &ActionQueue{b: b}
}

func (q *ActionQueue) Len() int {
	return len(q.list)
}

// List returns a copy of the pending actions in their current order.
func (q *ActionQueue) List() []*Action {
	return slices.Clone(q.list)
}

func (q *ActionQueue) Clear() {
	q.list = q.list[:0]
}

func (q *ActionQueue) Peek() *Action {
	if len(q.list) == 0 {
		return nil
	}
	return q.list[0]
}

// Shift removes and returns the next eligible action. Actions whose subject can no longer act are dropped.
func (q *ActionQueue) Shift() *Action {
	for len(q.list) > 0 {
		action := q.list[0]
		q.list = q.list[1:]

		if q.b.actionEligible(action) {
			return action
		}
		queueLogger().V(1).Info("dropping ineligible action", "kind", action.Kind.String(), "pokemon", action.Pokemon)
	}

	return nil
}

// resolve fills in tier, priority and speed. Priority is computed here once and not revisited.
func (q *ActionQueue) resolve(action *Action) {
	if action.Order == 0 {
		action.Order = actionTiers[action.Kind]
	}

	if action.Kind == ACTION_MOVE && action.Move != "" {
		action.Priority, action.FractionalPriority = q.b.movePriority(action)
	}

	q.refreshSpeed(action)
}

func (q *ActionQueue) refreshSpeed(action *Action) {
	if action.Pokemon.Valid() {
		action.Speed = q.b.Pokemon(action.Pokemon).Speed
	}
}

// AddChoice queues a batch of actions that were chosen together. They share one sequence number
// so ties among them go to the PRNG, while anything inserted later sorts after them.
// This includes doubles slots of one side: equal speed allies are shuffled, not kept in slot order.
func (q *ActionQueue) AddChoice(actions ...*Action) {
	q.seq++
	for _, action := range actions {
		action.Seq = q.seq
		q.resolve(action)
		q.list = append(q.list, action)

		queueLogger().V(2).Info("queued action", "kind", action.Kind.String(), "pokemon", action.Pokemon,
			"priority", action.Priority, "speed", action.Speed)
	}
}

// InsertChoice places a single action at its sorted position among the pending actions.
func (q *ActionQueue) InsertChoice(action *Action) {
	q.seq++
	action.Seq = q.seq
	q.resolve(action)

	index := slices.IndexFunc(q.list, func(other *Action) bool {
		return compareActions(action, other) < 0
	})
	if index < 0 {
		q.list = append(q.list, action)
		return
	}
	q.list = slices.Insert(q.list, index, action)
}

// InsertBefore places action immediately before ref. If ref is no longer pending, action runs next.
func (q *ActionQueue) InsertBefore(ref *Action, action *Action) {
	q.insertRelative(ref, action, 0)
}

// InsertAfter places action immediately after ref. If ref is no longer pending (it is the action
// being resolved right now), action runs next.
func (q *ActionQueue) InsertAfter(ref *Action, action *Action) {
	q.insertRelative(ref, action, 1)
}

func (q *ActionQueue) insertRelative(ref *Action, action *Action, offset int) {
	q.seq++
	action.Seq = q.seq
	q.resolve(action)

	index := slices.Index(q.list, ref)
	if index < 0 {
		q.list = slices.Insert(q.list, 0, action)
		return
	}
	q.list = slices.Insert(q.list, index+offset, action)
}

// PrioritizeAction moves an already queued action (or a new one) to the front of the queue.
func (q *ActionQueue) PrioritizeAction(action *Action) {
	if index := slices.Index(q.list, action); index >= 0 {
		q.list = slices.Delete(q.list, index, index+1)
	} else {
		q.seq++
		action.Seq = q.seq
		q.resolve(action)
	}
	q.list = slices.Insert(q.list, 0, action)
}

// WillMove returns the pending move action of a Pokemon, if any.
func (q *ActionQueue) WillMove(ref PokemonRef) *Action {
	return q.find(ref, ACTION_MOVE)
}

// WillAct returns the next pending action that is a Pokemon acting this turn.
func (q *ActionQueue) WillAct() *Action {
	index := slices.IndexFunc(q.list, func(a *Action) bool {
		switch a.Kind {
		case ACTION_MOVE, ACTION_SWITCH, ACTION_INSTASWITCH:
			return true
		}
		return false
	})
	if index < 0 {
		return nil
	}
	return q.list[index]
}

func (q *ActionQueue) WillSwitch(ref PokemonRef) *Action {
	if action := q.find(ref, ACTION_SWITCH); action != nil {
		return action
	}
	return q.find(ref, ACTION_INSTASWITCH)
}

func (q *ActionQueue) find(ref PokemonRef, kind ActionKind) *Action {
	index := slices.IndexFunc(q.list, func(a *Action) bool {
		return a.Pokemon == ref && a.Kind == kind
	})
	if index < 0 {
		return nil
	}
	return q.list[index]
}

// CancelAction removes every pending action of a Pokemon.
func (q *ActionQueue) CancelAction(ref PokemonRef) bool {
	before := len(q.list)
	q.list = slices.DeleteFunc(q.list, func(a *Action) bool {
		return a.Pokemon == ref
	})
	return len(q.list) != before
}

func (q *ActionQueue) CancelMove(ref PokemonRef) bool {
	before := len(q.list)
	q.list = slices.DeleteFunc(q.list, func(a *Action) bool {
		return a.Pokemon == ref && a.Kind == ACTION_MOVE
	})
	return len(q.list) != before
}

// ChangeAction replaces a Pokemon's pending actions with action.
func (q *ActionQueue) ChangeAction(ref PokemonRef, action *Action) {
	q.CancelAction(ref)
	q.InsertChoice(action)
}

// Sort reorders pending actions. Speeds are reread from the battle first.
func (q *ActionQueue) Sort() {
	q.b.UpdateSpeed()
	for _, action := range q.list {
		q.refreshSpeed(action)
	}
	speedSort(q.b.prng, q.list, compareActions)
}

func compareActions(a, b *Action) int {
	return cmp.Or(
		cmp.Compare(a.Order, b.Order),
		cmp.Compare(b.Priority, a.Priority),
		cmp.Compare(b.FractionalPriority, a.FractionalPriority),
		cmp.Compare(b.Speed, a.Speed),
		cmp.Compare(a.Seq, b.Seq),
	)
}
