package dashboard

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message shown once to the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type noticeQueue struct {
	items []Notice
}

func (q *noticeQueue) success(msg string) {
	q.items = append(q.items, Notice{Level: LevelSuccess, Message: msg})
}

func (q *noticeQueue) failure(msg string) {
	q.items = append(q.items, Notice{Level: LevelError, Message: msg})
}

// drain returns the pending notices and forgets them.
func (q *noticeQueue) drain() []Notice {
	out := q.items
	q.items = nil
	if out == nil {
		return []Notice{}
	}
	return out
}
