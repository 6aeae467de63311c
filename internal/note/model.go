package note

import "time"

// TimeLayout is the wire and storage format for note timestamps (ISO-8601, UTC, millis).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Note is keyed by (OwnerID, NoteID). OwnerID always comes from the verified caller.
type Note struct {
	OwnerID   string
	NoteID    string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the public shape of a note. The owner is never echoed back.
type View struct {
	NoteID    string   `json:"note_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func (n Note) View() View {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return View{
		NoteID:    n.NoteID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: FormatTime(n.CreatedAt),
		UpdatedAt: FormatTime(n.UpdatedAt),
	}
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
