package game

// Drawing event types.
const (
	DRAW_START = "start"
	DRAW_MOVE  = "draw"
	DRAW_END   = "end"
	DRAW_CLEAR = "clear"
)

// DrawingPoint is one relayed stroke sample. A clear event is a canvas
// wipe, everything before it is dropped from the replay log.
type DrawingPoint struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

func validDrawingType(t string) bool {
	switch t {
	case DRAW_START, DRAW_MOVE, DRAW_END, DRAW_CLEAR:
		return true
	}
	return false
}

const maxStoredDrawingPoints = 4096

func (r *room) appendDrawingPoint(point DrawingPoint) {
	if point.Type == DRAW_CLEAR {
		r.drawing = r.drawing[:0]
		return
	}
	if len(r.drawing) < maxStoredDrawingPoints {
		r.drawing = append(r.drawing, point)
	}
}
