// Package ctdecision walks the head injury CT indication decision tree.
//
// The tree is an explicit state machine: every (node, answer) pair maps to
// either the next node or a terminal outcome. Seven red flag questions lead
// straight to an urgent scan, followed by a loss of consciousness question
// that branches into the within 8 hours criteria or the anticoagulation check.
package ctdecision

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownNode is returned for a node that is not part of the tree.
	ErrUnknownNode = errors.New("unknown decision node")

	// ErrInvalidAnswer is returned when a transition is requested without a yes/no answer.
	ErrInvalidAnswer = errors.New("answer must be yes or no")

	// ErrInvalidTree is returned by Validate for a malformed transition table.
	ErrInvalidTree = errors.New("invalid decision tree")
)

// NodeID identifies a question.
type NodeID int

// Question nodes in the order they are presented.
const (
	NodeGCSBelow13 NodeID = iota + 1
	NodeGCSBelow15After2h
	NodeOpenSkullFracture
	NodeBasalSkullFracture
	NodeSeizure
	NodeFocalDeficit
	NodeRepeatedVomiting
	NodeLossOfConsciousness
	NodeAnticoagulation
	NodeAge65OrOlder
	NodeCoagulopathy
	NodeDangerousMechanism
	NodeRetrogradeAmnesia
)

// Question describes a node for presentation.
type Question struct {
	ID     NodeID `json:"id"`
	Prompt string `json:"prompt"`
	Help   string `json:"help,omitempty"`
}

// Target is where a transition leads. Exactly one of Next and Outcome is set.
type Target struct {
	Next    NodeID  `json:"next,omitempty"`
	Outcome Outcome `json:"outcome"`
}

// Terminal reports whether the target ends the walk.
func (t Target) Terminal() bool {
	return t.Outcome != Pending
}

type transitionKey struct {
	node   NodeID
	answer Answer
}

// Tree is an immutable decision tree.
type Tree struct {
	start       NodeID
	questions   []Question
	index       map[NodeID]int
	transitions map[transitionKey]Target
}

// NewTree builds a tree from its questions and transition table. The first
// question is the start node. The result is not validated.
func NewTree(questions []Question, transitions map[NodeID][2]Target) *Tree {
	t := &Tree{
		questions:   append([]Question(nil), questions...),
		index:       make(map[NodeID]int, len(questions)),
		transitions: make(map[transitionKey]Target, 2*len(transitions)),
	}
	if len(questions) > 0 {
		t.start = questions[0].ID
	}
	for i, q := range t.questions {
		t.index[q.ID] = i
	}
	for node, targets := range transitions {
		t.transitions[transitionKey{node, No}] = targets[0]
		t.transitions[transitionKey{node, Yes}] = targets[1]
	}
	return t
}

func next(id NodeID) Target { return Target{Next: id} }

func outcome(o Outcome) Target { return Target{Outcome: o} }

// redFlag continues to the next question on No and requires an urgent scan on Yes.
func redFlag(after NodeID) [2]Target { return [2]Target{next(after), outcome(UrgentCT)} }

var defaultTree = NewTree(
	[]Question{
		{ID: NodeGCSBelow13, Prompt: "GCS below 13 on initial assessment in the emergency department", Help: "Glasgow Coma Scale: eye opening 1-4, verbal response 1-5, best motor response 1-6, total 3-15."},
		{ID: NodeGCSBelow15After2h, Prompt: "GCS below 15 in the emergency department 2 hours after the injury", Help: "Glasgow Coma Scale: eye opening 1-4, verbal response 1-5, best motor response 1-6, total 3-15."},
		{ID: NodeOpenSkullFracture, Prompt: "Suspected open or depressed skull fracture"},
		{ID: NodeBasalSkullFracture, Prompt: "Any sign of basal skull fracture", Help: "Haemotympanum, periorbital haematoma (panda eyes), bruising over the mastoid (Battle's sign), cerebrospinal fluid leakage from the nose or ear."},
		{ID: NodeSeizure, Prompt: "Post-traumatic seizure"},
		{ID: NodeFocalDeficit, Prompt: "Focal neurological deficit", Help: "For example hemiparesis, dysphasia or a visual field defect."},
		{ID: NodeRepeatedVomiting, Prompt: "More than one episode of vomiting since the injury"},
		{ID: NodeLossOfConsciousness, Prompt: "Any loss of consciousness or amnesia since the injury"},
		{ID: NodeAnticoagulation, Prompt: "Anticoagulant or antiplatelet medication, excluding aspirin", Help: "Warfarin, DOACs, heparin, LMWH, clopidogrel, ticagrelor, prasugrel."},
		{ID: NodeAge65OrOlder, Prompt: "Age 65 or older"},
		{ID: NodeCoagulopathy, Prompt: "Known bleeding or clotting disorder", Help: "Liver failure, haemophilia, anticoagulant or antiplatelet medication."},
		{ID: NodeDangerousMechanism, Prompt: "Dangerous mechanism of injury", Help: "Pedestrian or cyclist struck by a motor vehicle, ejection from a vehicle, fall from more than 1 metre or 5 stairs."},
		{ID: NodeRetrogradeAmnesia, Prompt: "More than 30 minutes of retrograde amnesia", Help: "Loss of memory of events immediately before the injury."},
	},
	map[NodeID][2]Target{
		NodeGCSBelow13:          redFlag(NodeGCSBelow15After2h),
		NodeGCSBelow15After2h:   redFlag(NodeOpenSkullFracture),
		NodeOpenSkullFracture:   redFlag(NodeBasalSkullFracture),
		NodeBasalSkullFracture:  redFlag(NodeSeizure),
		NodeSeizure:             redFlag(NodeFocalDeficit),
		NodeFocalDeficit:        redFlag(NodeRepeatedVomiting),
		NodeRepeatedVomiting:    redFlag(NodeLossOfConsciousness),
		NodeLossOfConsciousness: {next(NodeAnticoagulation), next(NodeAge65OrOlder)},
		NodeAnticoagulation:     {outcome(NoCTNeeded), outcome(DiscretionaryCT)},
		NodeAge65OrOlder:        {next(NodeCoagulopathy), outcome(Within8Hours)},
		NodeCoagulopathy:        {next(NodeDangerousMechanism), outcome(Within8Hours)},
		NodeDangerousMechanism:  {next(NodeRetrogradeAmnesia), outcome(Within8Hours)},
		NodeRetrogradeAmnesia:   {outcome(NoCTNeeded), outcome(Within8Hours)},
	},
)

// Default returns the head injury CT decision tree.
func Default() *Tree {
	return defaultTree
}

// Start returns the first node.
func (t *Tree) Start() NodeID {
	return t.start
}

// Questions returns the node metadata in presentation order.
func (t *Tree) Questions() []Question {
	return append([]Question(nil), t.questions...)
}

// Question returns the metadata of a single node.
func (t *Tree) Question(id NodeID) (Question, error) {
	i, ok := t.index[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return t.questions[i], nil
}

// Step performs a single transition.
func (t *Tree) Step(node NodeID, answer Answer) (Target, error) {
	if _, ok := t.index[node]; !ok {
		return Target{}, fmt.Errorf("%w: %d", ErrUnknownNode, node)
	}
	if answer != No && answer != Yes {
		return Target{}, fmt.Errorf("%w: node %d got %s", ErrInvalidAnswer, node, answer)
	}
	target, ok := t.transitions[transitionKey{node, answer}]
	if !ok {
		return Target{}, fmt.Errorf("%w: node %d has no %s transition", ErrInvalidTree, node, answer)
	}
	return target, nil
}

// Validate checks that every node has both transitions, every target node
// exists, no node is visited twice on a walk and every node is reachable
// from the start.
func (t *Tree) Validate() error {
	if len(t.questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidTree)
	}
	for key, target := range t.transitions {
		if _, ok := t.index[key.node]; !ok {
			return fmt.Errorf("%w: transition from unknown node %d", ErrInvalidTree, key.node)
		}
		if target.Terminal() == (target.Next != 0) {
			return fmt.Errorf("%w: node %d %s must lead to exactly one of a node or an outcome", ErrInvalidTree, key.node, key.answer)
		}
		if !target.Terminal() {
			if _, ok := t.index[target.Next]; !ok {
				return fmt.Errorf("%w: node %d %s leads to unknown node %d", ErrInvalidTree, key.node, key.answer, target.Next)
			}
		}
	}
	for _, q := range t.questions {
		for _, answer := range []Answer{No, Yes} {
			if _, ok := t.transitions[transitionKey{q.ID, answer}]; !ok {
				return fmt.Errorf("%w: node %d has no %s transition", ErrInvalidTree, q.ID, answer)
			}
		}
	}

	reached := make(map[NodeID]bool, len(t.questions))
	if err := t.walk(t.start, map[NodeID]bool{}, reached); err != nil {
		return err
	}
	var unreachable []int
	for _, q := range t.questions {
		if !reached[q.ID] {
			unreachable = append(unreachable, int(q.ID))
		}
	}
	if len(unreachable) > 0 {
		sort.Ints(unreachable)
		return fmt.Errorf("%w: unreachable nodes %v", ErrInvalidTree, unreachable)
	}
	return nil
}

func (t *Tree) walk(node NodeID, onPath, reached map[NodeID]bool) error {
	if onPath[node] {
		return fmt.Errorf("%w: cycle through node %d", ErrInvalidTree, node)
	}
	reached[node] = true
	onPath[node] = true
	defer delete(onPath, node)

	for _, answer := range []Answer{No, Yes} {
		target := t.transitions[transitionKey{node, answer}]
		if target.Terminal() {
			continue
		}
		if err := t.walk(target.Next, onPath, reached); err != nil {
			return err
		}
	}
	return nil
}
