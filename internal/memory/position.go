package memory

import (
	"time"

	"github.com/google/uuid"
)

// ReadingPosition 描述读者在文档中的大致位置。
type ReadingPosition int

const (
	PositionBeginning ReadingPosition = iota
	PositionEarly
	PositionMiddle
)

var positionNames = [...]string{
	"beginning",
	"early",
	"middle",
}

func (p ReadingPosition) String() string {
	if p >= 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "unknown"
}

// earlyExpressions 以内的表达式都算文档前部。
const earlyExpressions = 3

// computePosition 由已处理表达式数、证明是否打开、本条是否出现证明结束符推出阅读位置：
//
//	第一条表达式        → beginning
//	证明仍在进行        → middle
//	刚出现证明结束符    → early（下一段论证即将开始）
//	前 3 条表达式       → early
//	其余                → middle
func computePosition(processed int, inProof, terminal bool) ReadingPosition {
	switch {
	case processed <= 1:
		return PositionBeginning
	case inProof:
		return PositionMiddle
	case terminal:
		return PositionEarly
	case processed <= earlyExpressions:
		return PositionEarly
	}
	return PositionMiddle
}

// Session 是一次文档会话的计数状态。
type Session struct {
	ID                   string
	ReadingPosition      ReadingPosition
	ExpressionsProcessed int
	LastExpression       string
	StartedAt            time.Time
}

func newSession() Session {
	return Session{
		ID:              uuid.NewString(),
		ReadingPosition: PositionBeginning,
		StartedAt:       time.Now(),
	}
}
