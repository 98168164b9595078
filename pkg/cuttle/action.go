package cuttle

import (
	"encoding/json"
	"fmt"
)

// ActionType enumerates the moves a player (or opponent port) can submit to
// Apply (spec.md §4.E/§4.F).
type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlayPoints
	ActionPlayFaceCard
	ActionPlayJack
	ActionPlayOneOff
	ActionScuttle
	ActionCounter
	ActionResolve
	ActionTakeFromDiscard
	ActionDiscardFromHand
)

func (t ActionType) String() string {
	switch t {
	case ActionDraw:
		return "Draw"
	case ActionPlayPoints:
		return "PlayPoints"
	case ActionPlayFaceCard:
		return "PlayFaceCard"
	case ActionPlayJack:
		return "PlayJack"
	case ActionPlayOneOff:
		return "PlayOneOff"
	case ActionScuttle:
		return "Scuttle"
	case ActionCounter:
		return "Counter"
	case ActionResolve:
		return "Resolve"
	case ActionTakeFromDiscard:
		return "TakeFromDiscard"
	case ActionDiscardFromHand:
		return "DiscardFromHand"
	default:
		return "Unknown"
	}
}

func actionTypeFromName(name string) (ActionType, error) {
	for t := ActionDraw; t <= ActionDiscardFromHand; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("cuttle: unknown action type %q", name)
}

func (t ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ActionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := actionTypeFromName(name)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Action is a single move submitted to Apply. Not every field is meaningful
// for every ActionType; Card and Target are -1 when unused.
type Action struct {
	Type     ActionType `json:"type"`
	PlayedBy int        `json:"played_by"`
	Card     CardID     `json:"card"`   // the card being played, drawn-into, or discarded
	Target   CardID     `json:"target"` // a field/point card being scuttled, jacked, or stolen
	Source   CardID     `json:"source"` // a discard-pile card being reclaimed by a Three
}

// NoCard marks an Action field as unused.
const NoCard CardID = -1
