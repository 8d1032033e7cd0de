package plan

// Plan is a non-empty ordered sequence of tasks sharing one tag, decoded
// from a contiguous run of log entries.
type Plan struct {
	Tag   string
	Tasks []Task
}

// TaskByKey returns the task whose entry identifier is key, or nil.
func (p *Plan) TaskByKey(key string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].Key == key {
			return &p.Tasks[i]
		}
	}
	return nil
}

// Keys returns the entry identifiers of every task, in plan order.
func (p *Plan) Keys() []string {
	keys := make([]string, len(p.Tasks))
	for i := range p.Tasks {
		keys[i] = p.Tasks[i].Key
	}
	return keys
}

// FirstIncomplete returns the first task whose Completed is false, or nil
// when every task is complete.
func (p *Plan) FirstIncomplete() *Task {
	for i := range p.Tasks {
		if !p.Tasks[i].Completed {
			return &p.Tasks[i]
		}
	}
	return nil
}
