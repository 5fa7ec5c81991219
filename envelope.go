package taskrunner

import (
	"encoding/json"
	"fmt"
)

// Envelope tags, normative for any consumer of raw sink bytes. Frames are
// self-delimiting against arbitrary printed content, with the acknowledged
// hazard that printed text containing a literal tag will be misparsed.
const (
	taskChangeStartTag = `{TaskChangeStart `
	taskChangeEndTag   = ` TaskChangeEnd}`
	nameChangeStartTag = `{NameChangeStart `
	nameChangeEndTag   = ` NameChangeEnd}`
	closeSinkTag       = `{CloseSink}`
)

type (
	// taskChangePayload is the wire form of a TaskChange, inside a
	// {TaskChangeStart ...} frame. Exactly one field is set.
	taskChangePayload struct {
		Message *string        `json:"message,omitempty"`
		Status  *statusPayload `json:"status,omitempty"`
	}

	statusPayload struct {
		Kind   string  `json:"kind"`
		Answer *string `json:"answer,omitempty"`
		Error  string  `json:"error,omitempty"`
	}
)

var statusKindNames = map[StatusKind]string{
	StatusPending:  `pending`,
	StatusRunning:  `running`,
	StatusFinished: `finished`,
	StatusFailed:   `failed`,
}

func marshalTaskChange(change TaskChange) ([]byte, error) {
	var payload taskChangePayload
	switch change := change.(type) {
	case TaskMessage:
		message := string(change)
		payload.Message = &message
	case Status:
		kind, ok := statusKindNames[change.Kind]
		if !ok {
			return nil, fmt.Errorf(`taskrunner: invalid status kind: %d`, change.Kind)
		}
		payload.Status = &statusPayload{
			Kind:   kind,
			Answer: change.Answer,
			Error:  change.Err,
		}
	default:
		return nil, fmt.Errorf(`taskrunner: invalid task change type: %T`, change)
	}
	return json.Marshal(payload)
}

func unmarshalTaskChange(data []byte) (TaskChange, error) {
	var payload taskChangePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf(`taskrunner: malformed task change payload: %w`, err)
	}
	switch {
	case payload.Message != nil:
		return TaskMessage(*payload.Message), nil
	case payload.Status != nil:
		for kind, name := range statusKindNames {
			if name == payload.Status.Kind {
				return Status{
					Kind:   kind,
					Answer: payload.Status.Answer,
					Err:    payload.Status.Error,
				}, nil
			}
		}
		return nil, fmt.Errorf(`taskrunner: unknown status kind: %q`, payload.Status.Kind)
	default:
		return nil, fmt.Errorf(`taskrunner: empty task change payload`)
	}
}
