package note

import "encoding/json"

// Field records whether a JSON member was present, separately from its value.
// An explicit null counts as present and leaves Value at its zero value.
type Field[T any] struct {
	Value T
	Set   bool
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	return json.Unmarshal(b, &f.Value)
}

func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Patch is a partial update. Only fields with Set overwrite the stored note.
type Patch struct {
	Title   Field[string]   `json:"title"`
	Content Field[string]   `json:"content"`
	Tags    Field[[]string] `json:"tags"`
}

func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Tags.Set
}

// Apply merges the patch into n. Timestamps are left to the caller.
func (p Patch) Apply(n Note) Note {
	if p.Title.Set {
		n.Title = p.Title.Value
	}
	if p.Content.Set {
		n.Content = p.Content.Value
	}
	if p.Tags.Set {
		n.Tags = p.Tags.Value
		if n.Tags == nil {
			n.Tags = []string{}
		}
	}
	return n
}
