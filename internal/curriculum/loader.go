package curriculum

// Source is one flattened corpus record: a titled content block together
// with the topic metadata retrieval needs.
type Source struct {
	TopicID    string
	TopicName  string
	Subtopic   string
	Difficulty string
	Text       string
}

// topicByAddress indexes topics by both map key and short ID so callers can
// use either addressing scheme transparently.
var topicByAddress = func() map[string]Topic {
	m := make(map[string]Topic, len(topics)*2)
	for _, key := range topicOrder {
		t := topics[key]
		m[t.Key] = t
		m[t.ID] = t
	}
	return m
}()

// AllContentChunks returns the whole curriculum as a flat ordered sequence
// of sources, one per content entry. The order is deterministic: topics in
// curriculum order, entries in authoring order.
func AllContentChunks() []Source {
	var out []Source
	for _, key := range topicOrder {
		t := topics[key]
		for _, entry := range t.Content {
			out = append(out, Source{
				TopicID:    t.ID,
				TopicName:  t.Name,
				Subtopic:   entry.Title,
				Difficulty: t.Difficulty,
				Text:       entry.Text,
			})
		}
	}
	return out
}

// TopicByID looks up a topic by map key or short ID.
func TopicByID(id string) (Topic, bool) {
	t, ok := topicByAddress[id]
	return t, ok
}

// AllTopics returns every topic in curriculum order.
func AllTopics() []Topic {
	out := make([]Topic, 0, len(topicOrder))
	for _, key := range topicOrder {
		out = append(out, topics[key])
	}
	return out
}

// TopicNames returns the display names of all topics in curriculum order.
func TopicNames() []string {
	out := make([]string, 0, len(topicOrder))
	for _, key := range topicOrder {
		out = append(out, topics[key].Name)
	}
	return out
}
